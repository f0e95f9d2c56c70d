// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the lotctl
// tool, organized using the cobra library. Each sub-command loads the
// lot state from the configured data file, applies one core
// operation, and writes the state back, so the tool works as a thin
// console collaborator over the lot use case.
//
//	./lotctl slot add 12 "B2 north wall" [-c /path/of/config.yaml]
//	./lotctl park 12 "Zhang Wei" 京A12345 13800138000 --type resident
//	./lotctl leave 12
//	./lotctl payment add 12 200 30
//	./lotctl report stats --json
//	./lotctl data export /tmp/lot-backup.dat
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/communitylot/lotkeeper/pkg/adapter/config"
	"github.com/communitylot/lotkeeper/pkg/adapter/metrics"
	"github.com/communitylot/lotkeeper/pkg/adapter/store/memrp"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "lotctl",
	Short: "Community parking lot management",
	Long: `Community parking lot management over a flat data file.
The tool tracks parking slots and their occupants, bills visitors by
started hours and residents by overdue monthly fees, keeps daily and
monthly revenue counters with calendar rollover, and persists the
whole lot state in a line-oriented pipe-delimited file between
invocations. All business rules (rates, visitor entry window, time
zone) come from the YAML configuration file.`,
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either
// the CLI args, the CONFIG_FILE environment variable, or its default
// value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}

// appEnv bundles the loaded configuration with the instrumented use
// case for the duration of one command.
type appEnv struct {
	cfg *config.Config
	uc  *metrics.Instrumented
}

// buildEnv loads the configuration, installs the default logger, and
// builds the instrumented use case.
func buildEnv() (*appEnv, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()},
	)))
	uc, err := cfg.NewUseCase()
	if err != nil {
		return nil, fmt.Errorf("building use case: %w", err)
	}
	return &appEnv{cfg: cfg, uc: metrics.NewInstrumented(uc)}, nil
}

// loadLot reads the lot state from the configured data file. A
// missing file yields a fresh empty lot, so the very first command
// against a new deployment works without a seed file.
func (env *appEnv) loadLot(ctx context.Context) (repo.Lot, error) {
	path := env.cfg.Lot.DataFile
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return memrp.New(), nil
	}
	return env.uc.Load(ctx, path)
}

// saveLot writes the lot state back to the configured data file and
// refreshes the metrics textfile snapshot when one is configured.
func (env *appEnv) saveLot(ctx context.Context, lot repo.Lot) error {
	if err := env.uc.Save(ctx, lot, env.cfg.Lot.DataFile); err != nil {
		return err
	}
	return env.snapshotMetrics()
}

// snapshotMetrics dumps the metric registry to the configured
// textfile, if any.
func (env *appEnv) snapshotMetrics() error {
	path := env.cfg.Metrics.Textfile
	if path == "" {
		return nil
	}
	if err := env.uc.WriteTextfile(path); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
