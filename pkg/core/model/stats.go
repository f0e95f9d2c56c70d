// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Statistics is a snapshot of the lot state for reporting purposes.
// It is computed on demand and holds no references into the record
// store, so it stays valid after further mutations.
type Statistics struct {
	TotalSlots       int     `json:"total_slots"`
	OccupiedSlots    int     `json:"occupied_slots"`
	FreeSlots        int     `json:"free_slots"`
	ResidentVehicles int     `json:"resident_vehicles"`
	VisitorVehicles  int     `json:"visitor_vehicles"`
	OccupancyRate    float64 `json:"occupancy_rate"` // percent, 0 for an empty lot
	TodayRevenue     float64 `json:"today_revenue"`
	MonthRevenue     float64 `json:"month_revenue"`
}
