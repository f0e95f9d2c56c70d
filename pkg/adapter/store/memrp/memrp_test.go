// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitylot/lotkeeper/pkg/adapter/store/memrp"
	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/model"
)

var now = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func newSlot(id int) *model.Slot {
	return &model.Slot{
		ID:       id,
		Location: "row A",
		Status:   model.SlotStatusFree,
	}
}

func TestAddSlot(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	r.Zero(lot.TotalSlots(), "a fresh lot has no slots")

	r.NoError(lot.AddSlot(newSlot(3)), "attaching slot 3")
	r.NoError(lot.AddSlot(newSlot(1)), "attaching slot 1")
	r.Equal(2, lot.TotalSlots())

	err := lot.AddSlot(newSlot(3))
	r.Error(err, "duplicate id must be rejected")
	r.Equal(cerr.CodeSlotExists, cerr.CodeOf(err))
	r.Equal(2, lot.TotalSlots(), "failed add must not mutate state")

	err = lot.AddSlot(&model.Slot{ID: 0})
	r.Equal(cerr.CodeInvalidParam, cerr.CodeOf(err))

	occupied := newSlot(7)
	occupied.Status = model.SlotStatusOccupied
	occupied.LicensePlate = "AB123"
	occupied.EntryTime = now
	r.NoError(lot.AddSlot(occupied), "attaching a loaded occupied slot")
	r.Equal(
		1, lot.OccupiedCount(),
		"occupied attachments must be counted",
	)
}

func TestDeleteSlot(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	r.NoError(lot.AddSlot(newSlot(1)))
	r.NoError(lot.AddSlot(newSlot(2)))
	_, err := lot.Allocate(
		2, "Li Na", "XY987", "13800138000", model.SlotTypeVisitor, now,
	)
	r.NoError(err)

	err = lot.DeleteSlot(9)
	r.Equal(cerr.CodeSlotNotFound, cerr.CodeOf(err))

	err = lot.DeleteSlot(2)
	r.Equal(
		cerr.CodeSlotOccupied, cerr.CodeOf(err),
		"occupied slots must not be deletable",
	)
	r.Equal(2, lot.TotalSlots())

	r.NoError(lot.DeleteSlot(1))
	r.Equal(1, lot.TotalSlots())
	_, ok := lot.FindByID(1)
	r.False(ok, "deleted slot must be gone")
}

func TestFinders(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	for id := 1; id <= 3; id++ {
		r.NoError(lot.AddSlot(newSlot(id)))
	}
	_, err := lot.Allocate(
		2, "Zhang Wei", "AB123", "13800138000",
		model.SlotTypeResident, now,
	)
	r.NoError(err)

	s, ok := lot.FindByID(2)
	r.True(ok)
	r.Equal("Zhang Wei", s.Owner)

	s, ok = lot.FindByLicense("AB123")
	r.True(ok)
	r.Equal(2, s.ID)
	_, ok = lot.FindByLicense("ZZ999")
	r.False(ok)

	s, ok = lot.FindByOwner("Wei")
	r.True(ok, "owner lookup matches substrings")
	r.Equal(2, s.ID)
	_, ok = lot.FindByOwner("Chen")
	r.False(ok)

	_, err = lot.Deallocate(2, now.Add(time.Hour))
	r.NoError(err)
	_, ok = lot.FindByLicense("AB123")
	r.False(ok, "deallocation must release the plate")
}

func TestListings(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	for _, id := range []int{5, 2, 9} {
		r.NoError(lot.AddSlot(newSlot(id)))
	}
	_, err := lot.Allocate(
		2, "Li Na", "XY987", "13800138000", model.SlotTypeVisitor, now,
	)
	r.NoError(err)

	ids := func(slots []*model.Slot) []int {
		out := make([]int, 0, len(slots))
		for _, s := range slots {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(
		t, []int{5, 9}, ids(lot.FreeSlots()),
		"free listing keeps insertion order",
	)
	assert.Equal(t, []int{2}, ids(lot.OccupiedSlots()))
	assert.Equal(t, []int{5, 2, 9}, ids(lot.All()))
}

func TestSlotsByDuration(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	for id := 1; id <= 3; id++ {
		r.NoError(lot.AddSlot(newSlot(id)))
	}
	// slot 2 parked first, then slot 1, then slot 3
	_, err := lot.Allocate(
		2, "a", "P2", "13800138000",
		model.SlotTypeVisitor, now.Add(-3*time.Hour),
	)
	r.NoError(err)
	_, err = lot.Allocate(
		1, "b", "P1", "13800138000",
		model.SlotTypeVisitor, now.Add(-2*time.Hour),
	)
	r.NoError(err)
	_, err = lot.Allocate(
		3, "c", "P3", "13800138000",
		model.SlotTypeVisitor, now.Add(-time.Hour),
	)
	r.NoError(err)

	asc := lot.SlotsByDuration(now, true)
	r.Len(asc, 3)
	assert.Equal(t, 3, asc[0].ID, "shortest stay first")
	assert.Equal(t, 2, asc[2].ID)

	desc := lot.SlotsByDuration(now, false)
	assert.Equal(t, 2, desc[0].ID, "longest stay first")
}

func TestAllocateDeallocate(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := memrp.New()
	r.NoError(lot.AddSlot(newSlot(1)))
	r.NoError(lot.AddSlot(newSlot(2)))

	_, err := lot.Allocate(
		9, "x", "P1", "13800138000", model.SlotTypeVisitor, now,
	)
	r.Equal(cerr.CodeSlotNotFound, cerr.CodeOf(err))

	s, err := lot.Allocate(
		1, "Zhang Wei", "AB123", "13800138000",
		model.SlotTypeResident, now,
	)
	r.NoError(err)
	r.True(s.Occupied())
	r.Equal(now, s.EntryTime)
	r.True(s.ExitTime.IsZero(), "allocation clears the exit time")
	r.Equal(1, lot.OccupiedCount())

	_, err = lot.Allocate(
		1, "y", "CD456", "13800138000", model.SlotTypeVisitor, now,
	)
	r.Equal(cerr.CodeSlotOccupied, cerr.CodeOf(err))

	_, err = lot.Allocate(
		2, "y", "AB123", "13800138000", model.SlotTypeVisitor, now,
	)
	r.Equal(
		cerr.CodeLicenseExists, cerr.CodeOf(err),
		"a parked plate must be unique lot-wide",
	)

	_, err = lot.Deallocate(2, now)
	r.Equal(cerr.CodeSlotFree, cerr.CodeOf(err))

	due := now.Add(24 * time.Hour)
	s.ResidentDueDate = due
	exit := now.Add(2 * time.Hour)
	s, err = lot.Deallocate(1, exit)
	r.NoError(err)
	r.False(s.Occupied())
	r.Empty(s.Owner, "occupant fields are cleared on release")
	r.Empty(s.LicensePlate)
	r.Empty(s.Contact)
	r.Equal(exit, s.ExitTime)
	r.Equal(
		due, s.ResidentDueDate,
		"the billing schedule survives the release",
	)
	r.Zero(lot.OccupiedCount())
}

func TestRevenueHandle(t *testing.T) {
	t.Parallel()
	lot := memrp.New()
	rev := lot.Revenue()
	rev.Add(30)
	assert.Equal(
		t, 30.0, lot.Revenue().Today,
		"the revenue handle aliases the lot accumulators",
	)
}
