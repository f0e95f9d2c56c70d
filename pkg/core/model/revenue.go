// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// Revenue holds the lot revenue accumulators together with the
// timestamp of the last revenue-cycle check. The Today and Month
// accumulators are reset at calendar day and month boundaries by
// the billing engine; they must not be read or accumulated without
// running a revenue-cycle update first, or stale totals could leak
// across period boundaries.
type Revenue struct {
	Today      float64   // revenue collected since the last day rollover
	Month      float64   // revenue collected since the last month rollover
	LastUpdate time.Time // timestamp of the last revenue-cycle check
}

// Add accumulates the given fee into both the daily and monthly
// revenue counters.
func (r *Revenue) Add(fee float64) {
	r.Today += fee
	r.Month += fee
}
