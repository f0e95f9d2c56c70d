// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrp is the in-memory record store adapter. It keeps slot
// records in a map keyed by their unique id for O(1) lookup, with a
// side slice remembering the insertion order so listings and sort
// tie-breaking stay deterministic. The adapter is deliberately free
// of locking; the core is specified as single-threaded and a lot
// handle is owned by one caller context at a time.
package memrp

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

// Lot implements the repo.Lot record store port.
type Lot struct {
	slots    map[int]*model.Slot
	order    []int // slot ids in insertion order
	occupied int
	revenue  model.Revenue
}

// compile-time check that *Lot satisfies the record store port
var _ repo.Lot = (*Lot)(nil)

// New creates an empty lot. Slots are attached individually and the
// capacity counter follows the attached slot count.
func New() *Lot {
	return &Lot{
		slots: make(map[int]*model.Slot),
	}
}

// AddSlot attaches the given slot record, rejecting duplicate ids
// without mutating state. A slot attached in an occupied state (as
// the persistence codec does when reloading a saved lot) is counted
// into the occupancy counter, which is how the counter is recomputed
// from scratch on load instead of being trusted from the file.
func (l *Lot) AddSlot(s *model.Slot) error {
	if s == nil || s.ID <= 0 {
		return cerr.InvalidParam(fmt.Errorf("invalid slot record: %+v", s))
	}
	if _, ok := l.slots[s.ID]; ok {
		return cerr.SlotExists(fmt.Errorf("slot %d already exists", s.ID))
	}
	l.slots[s.ID] = s
	l.order = append(l.order, s.ID)
	if s.Occupied() {
		l.occupied++
	}
	return nil
}

// DeleteSlot detaches the slot with the given id. Only free slots may
// be deleted; occupied ones are rejected, leaving state unchanged.
func (l *Lot) DeleteSlot(id int) error {
	s, ok := l.slots[id]
	if !ok {
		return cerr.SlotNotFound(fmt.Errorf("slot %d does not exist", id))
	}
	if s.Occupied() {
		return cerr.SlotOccupied(
			fmt.Errorf("slot %d is occupied and cannot be deleted", id),
		)
	}
	delete(l.slots, id)
	for i, sid := range l.order {
		if sid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID returns the slot with the given id, if present.
func (l *Lot) FindByID(id int) (*model.Slot, bool) {
	s, ok := l.slots[id]
	return s, ok
}

// FindByLicense returns the occupied slot holding the given plate.
// Plates of free slots are cleared on deallocation, so only occupied
// slots are consulted.
func (l *Lot) FindByLicense(plate string) (*model.Slot, bool) {
	for _, id := range l.order {
		s := l.slots[id]
		if s.Occupied() && s.LicensePlate == plate {
			return s, true
		}
	}
	return nil, false
}

// FindByOwner returns the first occupied slot whose owner name
// contains the given substring, scanning in insertion order.
func (l *Lot) FindByOwner(name string) (*model.Slot, bool) {
	for _, id := range l.order {
		s := l.slots[id]
		if s.Occupied() && strings.Contains(s.Owner, name) {
			return s, true
		}
	}
	return nil, false
}

// FreeSlots lists the currently free slots in insertion order.
func (l *Lot) FreeSlots() []*model.Slot {
	return l.filter(func(s *model.Slot) bool { return !s.Occupied() })
}

// OccupiedSlots lists the currently occupied slots in insertion
// order.
func (l *Lot) OccupiedSlots() []*model.Slot {
	return l.filter((*model.Slot).Occupied)
}

// All lists every slot in insertion order.
func (l *Lot) All() []*model.Slot {
	return l.filter(func(*model.Slot) bool { return true })
}

func (l *Lot) filter(keep func(*model.Slot) bool) []*model.Slot {
	var out []*model.Slot
	for _, id := range l.order {
		if s := l.slots[id]; keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// SlotsByDuration lists the occupied slots ordered by their elapsed
// parked time relative to now. The sort is stable, so ties keep the
// insertion order.
func (l *Lot) SlotsByDuration(
	now time.Time, ascending bool,
) []*model.Slot {
	out := l.OccupiedSlots()
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].ParkedDuration(now)
		dj := out[j].ParkedDuration(now)
		if ascending {
			return di < dj
		}
		return di > dj
	})
	return out
}

// TotalSlots reports the capacity counter, which follows the attached
// slot count: incremented on add, decremented on delete.
func (l *Lot) TotalSlots() int {
	return len(l.slots)
}

// OccupiedCount reports the number of occupied slots.
func (l *Lot) OccupiedCount() int {
	return l.occupied
}

// Revenue exposes the mutable revenue accumulators.
func (l *Lot) Revenue() *model.Revenue {
	return &l.revenue
}

// Allocate transitions a free slot into the occupied state. The state
// checks mirror the port contract: the slot must exist and be free,
// and the plate must not be held by any occupied slot lot-wide.
func (l *Lot) Allocate(
	id int,
	owner, plate, contact string,
	t model.SlotType,
	now time.Time,
) (*model.Slot, error) {
	s, ok := l.slots[id]
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	if s.Occupied() {
		return nil, cerr.SlotOccupied(
			fmt.Errorf("slot %d is already occupied", id),
		)
	}
	if other, ok := l.FindByLicense(plate); ok {
		return nil, cerr.LicenseExists(fmt.Errorf(
			"license plate %q is already on slot %d", plate, other.ID,
		))
	}
	s.Owner = owner
	s.LicensePlate = plate
	s.Contact = contact
	s.Type = t
	s.EntryTime = now
	s.ExitTime = time.Time{}
	s.Status = model.SlotStatusOccupied
	l.occupied++
	return s, nil
}

// Deallocate transitions an occupied slot back to the free state,
// clearing the occupant fields and recording now as the exit time.
// The resident due date is kept since it is the billing memory of
// the slot across allocation cycles.
func (l *Lot) Deallocate(id int, now time.Time) (*model.Slot, error) {
	s, ok := l.slots[id]
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	if !s.Occupied() {
		return nil, cerr.SlotFree(
			fmt.Errorf("slot %d is already free", id),
		)
	}
	s.Owner = ""
	s.LicensePlate = ""
	s.Contact = ""
	s.ExitTime = now
	s.Status = model.SlotStatusFree
	l.occupied--
	return s, nil
}
