// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the YAML configuration file and builds the
// use case layer out of it. The wall-clock business rules (the
// visitor entry window and the revenue calendar) are configured here
// with an explicit time zone instead of being hardcoded to the host
// local time, so deployments and tests can pin them down.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/communitylot/lotkeeper/pkg/adapter/codec/lotfile"
	"github.com/communitylot/lotkeeper/pkg/core/billing"
	"github.com/communitylot/lotkeeper/pkg/core/usecase/lotuc"
)

// Lot groups the lot-wide settings.
type Lot struct {
	// DataFile is the path of the persisted lot state.
	DataFile string `yaml:"data_file" validate:"required"`

	// Timezone names the IANA zone in which wall-clock rules are
	// evaluated, e.g. "Asia/Shanghai". Empty selects the host local
	// zone.
	Timezone string `yaml:"timezone"`
}

// Window configures the visitor entry window bounds, inclusive start
// and exclusive end, in local wall-clock hours.
type Window struct {
	StartHour int `yaml:"start_hour" validate:"min=0,max=23"`
	EndHour   int `yaml:"end_hour" validate:"min=0,max=24"`
}

// Billing groups the fee settings. Zero values select the engine
// defaults during normalization.
type Billing struct {
	VisitorHourlyFee   float64 `yaml:"visitor_hourly_fee" validate:"gte=0"`
	ResidentMonthlyFee float64 `yaml:"resident_monthly_fee" validate:"gte=0"`
	VisitorWindow      Window  `yaml:"visitor_window"`
}

// Metrics groups the instrumentation settings.
type Metrics struct {
	// Textfile is the path where a Prometheus textfile snapshot is
	// written after each command. Empty disables the snapshot.
	Textfile string `yaml:"textfile"`
}

// Logging groups the logger settings.
type Logging struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Config contains all settings which are required by the adapters
// and use cases.
type Config struct {
	Lot     Lot     `yaml:"lot"`
	Billing Billing `yaml:"billing"`
	Metrics Metrics `yaml:"metrics"`
	Logging Logging `yaml:"logging"`
}

// Load reads, validates, and normalizes the YAML config file at the
// given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// replaces unset values with their defaults: the engine default
// rates and visitor window, the host local time zone, and the info
// log level.
func (c *Config) ValidateAndNormalize() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if c.Billing.VisitorHourlyFee == 0 {
		c.Billing.VisitorHourlyFee = billing.DefaultVisitorHourlyFee
	}
	if c.Billing.ResidentMonthlyFee == 0 {
		c.Billing.ResidentMonthlyFee = billing.DefaultResidentMonthlyFee
	}
	if c.Billing.VisitorWindow == (Window{}) {
		c.Billing.VisitorWindow = Window{
			StartHour: billing.DefaultVisitorStartHour,
			EndHour:   billing.DefaultVisitorEndHour,
		}
	}
	if w := c.Billing.VisitorWindow; w.StartHour >= w.EndHour {
		return fmt.Errorf("empty visitor window: %+v", w)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Lot.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Lot.Timezone)
	if err != nil {
		return nil, fmt.Errorf(
			"loading timezone %q: %w", c.Lot.Timezone, err,
		)
	}
	return loc, nil
}

// SlogLevel maps the configured logging level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewUseCase builds the parking lot use case from these settings,
// wiring the lot file codec as the persistence port.
func (c *Config) NewUseCase() (*lotuc.UseCase, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	uc, err := lotuc.New(
		lotfile.New(),
		lotuc.WithRates(billing.Rates{
			VisitorHourly:   c.Billing.VisitorHourlyFee,
			ResidentMonthly: c.Billing.ResidentMonthlyFee,
		}),
		lotuc.WithVisitorWindow(billing.Window{
			StartHour: c.Billing.VisitorWindow.StartHour,
			EndHour:   c.Billing.VisitorWindow.EndHour,
		}),
		lotuc.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("building lot use case: %w", err)
	}
	return uc, nil
}
