// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package billing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitylot/lotkeeper/pkg/core/billing"
	"github.com/communitylot/lotkeeper/pkg/core/model"
)

var entry = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func TestVisitorFee(t *testing.T) {
	t.Parallel()
	rates := billing.DefaultRates()
	testCases := []struct {
		stay time.Duration
		fee  float64
	}{
		{stay: 0, fee: 0},
		{stay: -time.Hour, fee: 0},
		{stay: time.Second, fee: 10},
		{stay: 30 * time.Minute, fee: 10},
		{stay: time.Hour, fee: 10},
		{stay: time.Hour + time.Second, fee: 20},
		{stay: 2 * time.Hour, fee: 20},
		{stay: 25*time.Hour + time.Minute, fee: 260},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("stay of %v", tc.stay), func(t *testing.T) {
			t.Parallel()
			fee := rates.VisitorFee(entry, entry.Add(tc.stay))
			assert.Equal(
				t, tc.fee, fee, "charging a stay of %v", tc.stay,
			)
		})
	}
}

func TestResidentOverdueFee(t *testing.T) {
	t.Parallel()
	rates := billing.Rates{VisitorHourly: 10, ResidentMonthly: 200}
	now := entry

	t.Run("no billing schedule", func(t *testing.T) {
		t.Parallel()
		fee, due := rates.ResidentOverdueFee(now, time.Time{})
		assert.Zero(t, fee, "unscheduled slot must not be charged")
		assert.True(t, due.IsZero(), "due date must stay unset")
	})
	t.Run("not due yet", func(t *testing.T) {
		t.Parallel()
		future := now.Add(time.Hour)
		fee, due := rates.ResidentOverdueFee(now, future)
		assert.Zero(t, fee, "future due date must not be charged")
		assert.Equal(t, future, due, "due date must stay unchanged")
	})
	t.Run("one started month", func(t *testing.T) {
		t.Parallel()
		past := now.Add(-time.Second)
		fee, due := rates.ResidentOverdueFee(now, past)
		assert.Equal(t, 200.0, fee, "a started month is owed in full")
		assert.Equal(t, past.Add(billing.Month), due)
	})
	t.Run("exactly one month", func(t *testing.T) {
		t.Parallel()
		past := now.Add(-billing.Month)
		fee, due := rates.ResidentOverdueFee(now, past)
		assert.Equal(t, 200.0, fee, "a whole month is one month")
		assert.Equal(t, now, due, "due date advances up to now")
	})
	t.Run("one and a half months", func(t *testing.T) {
		t.Parallel()
		past := now.Add(-billing.Month - billing.Month/2)
		fee, due := rates.ResidentOverdueFee(now, past)
		assert.Equal(t, 400.0, fee, "started second month owed in full")
		assert.True(t, due.After(now), "due date must pass now")
		assert.Equal(t, past.Add(2*billing.Month), due)
	})
}

func TestVisitorWindow(t *testing.T) {
	t.Parallel()
	w := billing.DefaultVisitorWindow()
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		hour, min int
		open      bool
	}{
		{hour: 8, min: 59, open: false},
		{hour: 9, min: 0, open: true},
		{hour: 12, min: 30, open: true},
		{hour: 16, min: 59, open: true},
		{hour: 17, min: 0, open: false},
		{hour: 23, min: 0, open: false},
	}
	for _, tc := range testCases {
		at := day.Add(
			time.Duration(tc.hour)*time.Hour +
				time.Duration(tc.min)*time.Minute,
		)
		assert.Equal(
			t, tc.open, w.Contains(at), "window check at %v", at,
		)
	}
}

func TestUpdateRevenueCycle(t *testing.T) {
	t.Parallel()
	newRev := func(last time.Time) *model.Revenue {
		return &model.Revenue{Today: 30, Month: 500, LastUpdate: last}
	}
	last := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)

	t.Run("same day", func(t *testing.T) {
		t.Parallel()
		rev := newRev(last)
		now := last.Add(30 * time.Minute)
		billing.UpdateRevenueCycle(rev, now)
		assert.Equal(t, 30.0, rev.Today, "same day keeps daily total")
		assert.Equal(t, 500.0, rev.Month, "same day keeps monthly total")
		assert.Equal(t, now, rev.LastUpdate)
	})
	t.Run("next day", func(t *testing.T) {
		t.Parallel()
		rev := newRev(last)
		now := last.Add(2 * time.Hour) // March 11th
		billing.UpdateRevenueCycle(rev, now)
		assert.Zero(t, rev.Today, "day change resets the daily total")
		assert.Equal(t, 500.0, rev.Month, "monthly total survives a day")
		assert.Equal(t, now, rev.LastUpdate)
	})
	t.Run("next month", func(t *testing.T) {
		t.Parallel()
		rev := newRev(last)
		now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
		billing.UpdateRevenueCycle(rev, now)
		assert.Zero(t, rev.Today, "month change resets the daily total")
		assert.Zero(t, rev.Month, "month change resets the monthly total")
	})
	t.Run("next year same month", func(t *testing.T) {
		t.Parallel()
		rev := newRev(last)
		now := last.AddDate(1, 0, 0)
		billing.UpdateRevenueCycle(rev, now)
		assert.Zero(t, rev.Today, "year change resets the daily total")
		assert.Zero(t, rev.Month, "year change resets the monthly total")
	})
	t.Run("fresh accumulators", func(t *testing.T) {
		t.Parallel()
		rev := &model.Revenue{}
		require.True(t, rev.LastUpdate.IsZero())
		billing.UpdateRevenueCycle(rev, last)
		assert.Equal(t, last, rev.LastUpdate)
		rev.Add(40)
		assert.Equal(t, 40.0, rev.Today)
		assert.Equal(t, 40.0, rev.Month)
	})
}
