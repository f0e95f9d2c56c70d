// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the ports of the record store and persistence
// codec, as expected by the use cases layer. Adapters implement these
// interfaces, keeping the core independent of the storage details.
package repo

import (
	"time"

	"github.com/communitylot/lotkeeper/pkg/core/model"
)

// Lot is the aggregate root handle of one parking lot: the in-memory
// record store of its slots plus the capacity and revenue counters.
// A lot handle is owned by exactly one caller context at a time and
// every core operation receives it explicitly; no operation is
// atomic-safe against concurrent interleaving, so a multi-threaded
// caller must serialize access around the whole lot externally.
//
// All mutators keep the occupancy counter equal to the number of
// occupied slots. Failed mutations leave the store untouched.
// Returned slot pointers reference the live store records; mutating
// them mutates the lot.
type Lot interface {
	// AddSlot attaches a slot record, incrementing the capacity
	// counter. A slot whose id is already present is rejected with a
	// slot-exists error without mutating state. Slots attached in an
	// occupied state (e.g. by the persistence codec) are counted as
	// occupied.
	AddSlot(s *model.Slot) error

	// DeleteSlot detaches a free slot, decrementing the capacity
	// counter. Missing ids yield a slot-not-found error and occupied
	// slots a slot-occupied error, leaving state unchanged.
	DeleteSlot(id int) error

	// FindByID returns the slot with the given id, if present.
	FindByID(id int) (*model.Slot, bool)

	// FindByLicense returns the occupied slot holding the given
	// license plate. Free slots are never matched.
	FindByLicense(plate string) (*model.Slot, bool)

	// FindByOwner returns the first occupied slot whose owner name
	// contains the given substring. When several owners match, which
	// one wins depends on the internal iteration order and is
	// unspecified.
	FindByOwner(name string) (*model.Slot, bool)

	// FreeSlots lists the currently free slots.
	FreeSlots() []*model.Slot

	// OccupiedSlots lists the currently occupied slots.
	OccupiedSlots() []*model.Slot

	// SlotsByDuration lists the occupied slots ordered by elapsed
	// parked time relative to now. Ties keep the insertion order.
	SlotsByDuration(now time.Time, ascending bool) []*model.Slot

	// All lists every slot of the lot. The order is not semantically
	// significant.
	All() []*model.Slot

	// TotalSlots reports the capacity counter.
	TotalSlots() int

	// OccupiedCount reports the number of occupied slots.
	OccupiedCount() int

	// Revenue exposes the mutable revenue accumulators of the lot.
	Revenue() *model.Revenue

	// Allocate transitions a free slot to the occupied state,
	// populating the occupant fields and entry time and incrementing
	// the occupancy counter. It fails with slot-not-found,
	// slot-occupied, or license-exists errors; business validation
	// beyond these state checks belongs to the use cases layer.
	Allocate(
		id int,
		owner, plate, contact string,
		t model.SlotType,
		now time.Time,
	) (*model.Slot, error)

	// Deallocate transitions an occupied slot back to the free state,
	// clearing the occupant fields, recording now as the exit time,
	// and decrementing the occupancy counter. The resident due date
	// is preserved since it is the billing memory of the slot.
	// It fails with slot-not-found or slot-free errors.
	Deallocate(id int, now time.Time) (*model.Slot, error)
}

// LotCodec is the persistence port: a blocking, all-or-nothing
// save/load of an entire lot state. Load failures never touch any
// previously loaded in-memory state; the caller simply keeps its
// prior lot handle.
type LotCodec interface {
	// Save serializes the whole lot to the given path, replacing any
	// previous content.
	Save(path string, lot Lot) error

	// Load deserializes a fresh lot from the given path.
	Load(path string) (Lot, error)
}
