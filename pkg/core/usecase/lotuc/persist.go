// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/log"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

// Save persists the whole lot state to the given path through the
// configured codec. The write is blocking and all-or-nothing; codec
// failures surface as file-error results. Payment ledgers are not
// part of the persisted format and are lost across a save/load
// cycle.
func (uc *UseCase) Save(
	ctx context.Context, lot repo.Lot, path string,
) error {
	if path == "" {
		return cerr.InvalidParam(fmt.Errorf("empty data file path"))
	}
	if err := uc.codec.Save(path, lot); err != nil {
		return cerr.FileError(
			fmt.Errorf("saving lot to %q: %w", path, err),
		)
	}
	log.Info(ctx, "lot saved",
		slog.String("path", path),
		slog.Int("slots", lot.TotalSlots()),
	)
	return nil
}

// Load deserializes a fresh lot from the given path through the
// configured codec. On failure a file-error result is returned and
// any lot the caller currently holds stays untouched; the caller
// decides whether to retry or keep its prior state.
func (uc *UseCase) Load(
	ctx context.Context, path string,
) (repo.Lot, error) {
	if path == "" {
		return nil, cerr.InvalidParam(fmt.Errorf("empty data file path"))
	}
	lot, err := uc.codec.Load(path)
	if err != nil {
		return nil, cerr.FileError(
			fmt.Errorf("loading lot from %q: %w", path, err),
		)
	}
	log.Info(ctx, "lot loaded",
		slog.String("path", path),
		slog.Int("slots", lot.TotalSlots()),
	)
	return lot, nil
}
