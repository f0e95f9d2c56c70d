// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package billing contains the fee computation engine: pure functions
// over explicit timestamps, parameterized by configurable rates, so
// that every temporal rule is testable without manipulating the
// system clock. Two billing schemes exist. Visitors pay per started
// hour at deallocation time. Residents pay a fixed monthly fee in
// arrears, collected as an overdue fee at deallocation time whenever
// their due date has passed, in whole-month increments.
package billing

import (
	"math"
	"time"

	"github.com/communitylot/lotkeeper/pkg/core/model"
)

// Default billing parameters, applied when the configuration does not
// override them.
const (
	DefaultVisitorHourlyFee   = 10.0
	DefaultResidentMonthlyFee = 200.0

	DefaultVisitorStartHour = 9
	DefaultVisitorEndHour   = 17
)

// Month is the fixed billing month length. Overdue arithmetic uses
// this fixed 30-day period instead of calendar months.
const Month = 30 * 24 * time.Hour

// Rates bundles the configurable fee amounts.
type Rates struct {
	VisitorHourly   float64 // fee per started visitor hour
	ResidentMonthly float64 // fee per billing month of residency
}

// DefaultRates returns the default fee amounts.
func DefaultRates() Rates {
	return Rates{
		VisitorHourly:   DefaultVisitorHourlyFee,
		ResidentMonthly: DefaultResidentMonthlyFee,
	}
}

// Window is a daily entry window expressed in local wall-clock hours,
// inclusive of StartHour and exclusive of EndHour.
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultVisitorWindow returns the default visitor entry window.
func DefaultVisitorWindow() Window {
	return Window{
		StartHour: DefaultVisitorStartHour,
		EndHour:   DefaultVisitorEndHour,
	}
}

// Contains reports whether the wall-clock hour of t falls inside the
// window. The caller is responsible for converting t into the lot
// local time zone first.
func (w Window) Contains(t time.Time) bool {
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// VisitorFee computes the hourly visitor fee for a stay between entry
// and exit. Any started hour is charged in full, so every positive
// duration costs at least one hour. A non-positive duration costs
// nothing.
func (r Rates) VisitorFee(entry, exit time.Time) float64 {
	if !exit.After(entry) {
		return 0
	}
	hours := exit.Sub(entry).Hours()
	return math.Ceil(hours) * r.VisitorHourly
}

// ResidentOverdueFee computes the overdue amount of a resident slot
// whose monthly fee fell due at due, evaluated at now. An unset (zero)
// due date means the slot carries no billing schedule; it and any due
// date at or after now incur no fee and stay unchanged. Otherwise the
// arrears are charged in whole billing months and the returned due
// date is advanced by exactly the charged months, moving it forward
// past now.
func (r Rates) ResidentOverdueFee(
	now, due time.Time,
) (amount float64, newDue time.Time) {
	if due.IsZero() || !now.After(due) {
		return 0, due
	}
	overdue := now.Sub(due)
	months := int64(overdue / Month)
	if overdue%Month != 0 {
		months++
	}
	amount = float64(months) * r.ResidentMonthly
	newDue = due.Add(time.Duration(months) * Month)
	return amount, newDue
}

// UpdateRevenueCycle rolls the revenue accumulators over calendar
// boundaries, comparing now against the last update in the time zone
// of now. A year or month change resets both the daily and monthly
// accumulators; a day change resets only the daily one. The last
// update timestamp is always advanced to now. This must run before
// revenue is read or accumulated so stale totals never leak across a
// period boundary.
func UpdateRevenueCycle(rev *model.Revenue, now time.Time) {
	last := rev.LastUpdate.In(now.Location())
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	switch {
	case ny != ly || nm != lm:
		rev.Today = 0
		rev.Month = 0
	case nd != ld:
		rev.Today = 0
	}
	rev.LastUpdate = now
}
