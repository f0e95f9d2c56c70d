// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotuc

import (
	"context"
	"fmt"
	"time"

	"github.com/communitylot/lotkeeper/pkg/core/billing"
	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

// FindByID returns the slot with the given id. The returned pointer
// references the live store record and must not be retained across
// further lot mutations by callers which expect a stable snapshot.
func (uc *UseCase) FindByID(
	_ context.Context, lot repo.Lot, id int,
) (*model.Slot, error) {
	if err := checkParams(slotIDParam{SlotID: id}); err != nil {
		return nil, err
	}
	s, ok := lot.FindByID(id)
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	return s, nil
}

// FindByLicense returns the occupied slot holding the given plate.
func (uc *UseCase) FindByLicense(
	_ context.Context, lot repo.Lot, plate string,
) (*model.Slot, error) {
	if plate == "" || len(plate) > MaxLicenseLen {
		return nil, cerr.InvalidParam(
			fmt.Errorf("invalid license plate %q", plate),
		)
	}
	s, ok := lot.FindByLicense(plate)
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("no occupied slot holds plate %q", plate),
		)
	}
	return s, nil
}

// FindByOwner returns the first occupied slot whose owner name
// contains the given substring. Which slot wins on multiple matches
// is unspecified.
func (uc *UseCase) FindByOwner(
	_ context.Context, lot repo.Lot, name string,
) (*model.Slot, error) {
	if name == "" || len(name) > MaxNameLen {
		return nil, cerr.InvalidParam(
			fmt.Errorf("invalid owner name %q", name),
		)
	}
	s, ok := lot.FindByOwner(name)
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("no occupied slot matches owner %q", name),
		)
	}
	return s, nil
}

// FreeSlots lists the currently free slots.
func (uc *UseCase) FreeSlots(
	_ context.Context, lot repo.Lot,
) []*model.Slot {
	return lot.FreeSlots()
}

// OccupiedSlots lists the currently occupied slots.
func (uc *UseCase) OccupiedSlots(
	_ context.Context, lot repo.Lot,
) []*model.Slot {
	return lot.OccupiedSlots()
}

// SlotsByDuration lists the occupied slots ordered by elapsed parked
// time, evaluated against the configured clock.
func (uc *UseCase) SlotsByDuration(
	_ context.Context, lot repo.Lot, ascending bool,
) []*model.Slot {
	return lot.SlotsByDuration(uc.now(), ascending)
}

// Statistics computes a reporting snapshot of the lot. The revenue
// accumulators are rolled over first, so a snapshot taken on a new
// day or month never reports stale totals.
func (uc *UseCase) Statistics(
	_ context.Context, lot repo.Lot,
) *model.Statistics {
	rev := lot.Revenue()
	billing.UpdateRevenueCycle(rev, uc.now())
	st := &model.Statistics{
		TotalSlots:    lot.TotalSlots(),
		OccupiedSlots: lot.OccupiedCount(),
		TodayRevenue:  rev.Today,
		MonthRevenue:  rev.Month,
	}
	st.FreeSlots = st.TotalSlots - st.OccupiedSlots
	for _, s := range lot.OccupiedSlots() {
		switch s.Type {
		case model.SlotTypeResident:
			st.ResidentVehicles++
		case model.SlotTypeVisitor:
			st.VisitorVehicles++
		}
	}
	if st.TotalSlots > 0 {
		st.OccupancyRate =
			float64(st.OccupiedSlots) / float64(st.TotalSlots) * 100
	}
	return st
}

// CountDailyParking counts the occupied slots of the given type whose
// occupant entered on the same calendar day as date, evaluated in the
// lot time zone.
func (uc *UseCase) CountDailyParking(
	_ context.Context, lot repo.Lot, date time.Time, typ model.SlotType,
) (int, error) {
	if err := typ.Validate(); err != nil {
		return 0, cerr.InvalidParam(err)
	}
	ty, tm, td := date.In(uc.loc).Date()
	count := 0
	for _, s := range lot.OccupiedSlots() {
		if s.Type != typ || s.EntryTime.IsZero() {
			continue
		}
		ey, em, ed := s.EntryTime.In(uc.loc).Date()
		if ey == ty && em == tm && ed == td {
			count++
		}
	}
	return count, nil
}

// CountMonthlyParking counts the occupied slots of the given type
// whose occupant entered within the given calendar month, evaluated
// in the lot time zone.
func (uc *UseCase) CountMonthlyParking(
	_ context.Context,
	lot repo.Lot,
	year int, month time.Month,
	typ model.SlotType,
) (int, error) {
	if err := typ.Validate(); err != nil {
		return 0, cerr.InvalidParam(err)
	}
	if month < time.January || month > time.December {
		return 0, cerr.InvalidParam(
			fmt.Errorf("invalid month: %d", month),
		)
	}
	count := 0
	for _, s := range lot.OccupiedSlots() {
		if s.Type != typ || s.EntryTime.IsZero() {
			continue
		}
		entry := s.EntryTime.In(uc.loc)
		if entry.Year() == year && entry.Month() == month {
			count++
		}
	}
	return count, nil
}
