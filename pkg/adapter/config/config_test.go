// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitylot/lotkeeper/pkg/adapter/config"
	"github.com/communitylot/lotkeeper/pkg/core/billing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "writing test config file")
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	path := writeConfig(t, `
lot:
  data_file: /var/lib/lotkeeper/lot.dat
  timezone: Asia/Shanghai
billing:
  visitor_hourly_fee: 15
  resident_monthly_fee: 250
  visitor_window:
    start_hour: 8
    end_hour: 20
metrics:
  textfile: /var/lib/lotkeeper/metrics.prom
logging:
  level: debug
`)
	c, err := config.Load(path)
	r.NoError(err)
	assert.Equal(t, "/var/lib/lotkeeper/lot.dat", c.Lot.DataFile)
	assert.Equal(t, 15.0, c.Billing.VisitorHourlyFee)
	assert.Equal(t, 250.0, c.Billing.ResidentMonthlyFee)
	assert.Equal(t, 8, c.Billing.VisitorWindow.StartHour)
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())

	loc, err := c.Location()
	r.NoError(err)
	assert.Equal(t, "Asia/Shanghai", loc.String())

	uc, err := c.NewUseCase()
	r.NoError(err)
	assert.Equal(t, billing.Rates{
		VisitorHourly:   15,
		ResidentMonthly: 250,
	}, uc.Rates())
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	c, err := config.Load(writeConfig(t, `
lot:
  data_file: lot.dat
`))
	r.NoError(err)
	assert.Equal(
		t, billing.DefaultVisitorHourlyFee, c.Billing.VisitorHourlyFee,
	)
	assert.Equal(
		t, billing.DefaultResidentMonthlyFee,
		c.Billing.ResidentMonthlyFee,
	)
	assert.Equal(
		t, billing.DefaultVisitorStartHour,
		c.Billing.VisitorWindow.StartHour,
	)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())

	loc, err := c.Location()
	r.NoError(err)
	assert.Equal(t, "Local", loc.String())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name, content string
	}{
		{name: "missing data file", content: "lot: {}"},
		{
			name: "bad timezone",
			content: `
lot:
  data_file: lot.dat
  timezone: Nowhere/Void
`,
		},
		{
			name: "empty visitor window",
			content: `
lot:
  data_file: lot.dat
billing:
  visitor_window:
    start_hour: 17
    end_hour: 9
`,
		},
		{
			name: "unknown log level",
			content: `
lot:
  data_file: lot.dat
logging:
  level: chatty
`,
		},
		{name: "not yaml", content: "\tnot: yaml"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load(
			filepath.Join(t.TempDir(), "absent.yaml"),
		)
		assert.Error(t, err)
	})
}
