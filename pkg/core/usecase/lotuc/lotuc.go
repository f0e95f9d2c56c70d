// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotuc contains the parking lot use case: slot lifecycle
// operations, billing at deallocation time, payment ledger upkeep,
// queries and reports, and whole-lot persistence. Operations receive
// the lot handle explicitly so the core keeps no process-wide state;
// the caller owns the lot and passes it into every call.
//
// Business-rule violations are returned as *cerr.Error values with a
// code from the service taxonomy; they are never panics and never
// mutate the lot.
package lotuc

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/communitylot/lotkeeper/pkg/core/billing"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

// Limits on the validated inputs, matching the persisted record
// field widths.
const (
	MaxSlotID      = 99999
	MaxLocationLen = 99
	MaxNameLen     = 49
	MaxLicenseLen  = 49
	MaxContactLen  = 49

	// MaxPaymentDays bounds the coverage period of one payment
	// ledger entry.
	MaxPaymentDays = 365
)

// validate is shared by all use case instances; the validator is
// stateless after construction. The wiresafe rule rejects characters
// which would corrupt the pipe-delimited persisted records: the pipe
// field separator and line breaks.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation(
		"wiresafe",
		func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "|\n\r")
		},
	)
	if err != nil {
		panic(fmt.Errorf("registering wiresafe validation: %w", err))
	}
	return v
}

// UseCase implements the parking lot operations. It holds the
// persistence codec port together with the billing parameters and
// the clock, which are configurable through functional options.
type UseCase struct {
	codec repo.LotCodec

	rates  billing.Rates
	window billing.Window
	loc    *time.Location
	clock  func() time.Time
}

// Option configures an optional UseCase parameter.
type Option func(*UseCase) error

// WithRates overrides the default fee amounts.
func WithRates(r billing.Rates) Option {
	return func(uc *UseCase) error {
		if r.VisitorHourly <= 0 || r.ResidentMonthly <= 0 {
			return fmt.Errorf("non-positive rates: %+v", r)
		}
		uc.rates = r
		return nil
	}
}

// WithVisitorWindow overrides the default visitor entry window.
func WithVisitorWindow(w billing.Window) Option {
	return func(uc *UseCase) error {
		if w.StartHour < 0 || w.EndHour > 24 ||
			w.StartHour >= w.EndHour {
			return fmt.Errorf("invalid visitor window: %+v", w)
		}
		uc.window = w
		return nil
	}
}

// WithLocation sets the time zone in which wall-clock business rules
// (the visitor entry window and calendar rollovers) are evaluated.
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) error {
		if loc == nil {
			return fmt.Errorf("nil location")
		}
		uc.loc = loc
		return nil
	}
}

// WithClock replaces the wall clock, making temporal rules testable
// without touching the system clock.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return fmt.Errorf("nil clock")
		}
		uc.clock = now
		return nil
	}
}

// New instantiates the parking lot use case around the given
// persistence codec. Unset options fall back to the default rates,
// the default visitor window, the local time zone, and the system
// clock.
func New(codec repo.LotCodec, opts ...Option) (*UseCase, error) {
	if codec == nil {
		return nil, fmt.Errorf("nil lot codec")
	}
	uc := &UseCase{codec: codec}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.rates == (billing.Rates{}) {
		uc.rates = billing.DefaultRates()
	}
	if uc.window == (billing.Window{}) {
		uc.window = billing.DefaultVisitorWindow()
	}
	if uc.loc == nil {
		uc.loc = time.Local
	}
	if uc.clock == nil {
		uc.clock = time.Now
	}
	return uc, nil
}

// Rates returns the configured fee amounts.
func (uc *UseCase) Rates() billing.Rates {
	return uc.rates
}

// now returns the current instant converted to the configured lot
// time zone, so wall-clock comparisons use one consistent zone.
func (uc *UseCase) now() time.Time {
	return uc.clock().In(uc.loc)
}

// Now exposes the configured clock reading, letting presentation
// layers render elapsed durations against the same instant the
// business rules see.
func (uc *UseCase) Now() time.Time {
	return uc.now()
}
