// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
package model

import (
	"errors"
	"fmt"
	"time"
)

// SlotStatus specifies the occupancy state of a parking slot.
// Exactly one of the Free or Occupied states holds at any time.
// The zero value is invalid so an uninitialized status cannot be
// mistaken for a meaningful state.
type SlotStatus int

// Valid values for the SlotStatus enum.
const (
	SlotStatusInvalid SlotStatus = iota // zero value is invalid

	SlotStatusFree     // slot has no vehicle and may be allocated
	SlotStatusOccupied // slot currently holds a vehicle
)

// ErrUnknownSlotStatus indicates that a given string may not be parsed
// as a valid/known slot status. The caller of ParseSlotStatus already
// knows about the invalid string, hence, it is not encoded in the
// error itself and should be wrapped by the caller if relevant.
var ErrUnknownSlotStatus = errors.New("unknown slot status")

// SlotStatusError indicates an invalid slot status, containing the
// invalid status as an integer.
type SlotStatusError int

// Error implements the error interface, returning a string
// representation of the SlotStatusError.
func (e SlotStatusError) Error() string {
	return fmt.Sprintf("invalid slot status: %d", int(e))
}

// Validate returns nil if the SlotStatus value is valid. For invalid
// values, an instance of SlotStatusError will be returned.
func (s SlotStatus) Validate() error {
	switch s {
	case SlotStatusFree, SlotStatusOccupied:
		return nil
	default:
		return SlotStatusError(s)
	}
}

// String converts the SlotStatus enum to a string, helping to
// serialize it for presentation to end-users. Invalid status causes
// a panic.
func (s SlotStatus) String() string {
	switch s {
	case SlotStatusFree:
		return "free"
	case SlotStatusOccupied:
		return "occupied"
	default:
		panic(SlotStatusError(s))
	}
}

// ParseSlotStatus parses the given string and returns a SlotStatus.
// For invalid strings, SlotStatusInvalid and ErrUnknownSlotStatus
// will be returned.
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch s {
	case "free":
		return SlotStatusFree, nil
	case "occupied":
		return SlotStatusOccupied, nil
	default:
		return SlotStatusInvalid, ErrUnknownSlotStatus
	}
}

// Slot models one physical parking space and its occupancy record.
// A slot cycles between the free and occupied states. The occupant
// fields (Owner, LicensePlate, Contact) carry meaning only while the
// slot is occupied; they are populated on allocation and cleared on
// deallocation. The ResidentDueDate survives allocation cycles since
// it is the billing memory of the slot, remembering when the next
// resident monthly fee falls due.
type Slot struct {
	ID       int    // unique positive identifier, immutable
	Location string // free-text location descriptor

	Owner        string   // occupant name, empty while free
	LicensePlate string   // occupant plate, unique among occupied slots
	Contact      string   // occupant contact number, empty while free
	Type         SlotType // occupant kind, meaningful only if occupied

	EntryTime time.Time // when the current/last occupant entered
	ExitTime  time.Time // when the last occupant left, zero if occupied

	Status SlotStatus

	// ResidentDueDate marks when the next resident monthly fee is
	// due. A zero value means the slot carries no billing schedule
	// and resident deallocation incurs no overdue fee.
	ResidentDueDate time.Time

	// Payments is the ordered ledger of payment entries for this
	// slot. Insertion order is preserved and growth is unbounded.
	Payments []Payment
}

// Occupied reports whether the slot currently holds a vehicle.
func (s *Slot) Occupied() bool {
	return s.Status == SlotStatusOccupied
}

// ParkedDuration returns the elapsed parked time of the slot occupant.
// If the occupant has departed (a non-zero exit time is recorded), the
// exit to entry distance is returned, otherwise the distance from the
// entry time up to the given now is used. Slots which were never
// allocated report a zero duration.
func (s *Slot) ParkedDuration(now time.Time) time.Duration {
	if s.EntryTime.IsZero() {
		return 0
	}
	if !s.ExitTime.IsZero() {
		return s.ExitTime.Sub(s.EntryTime)
	}
	return now.Sub(s.EntryTime)
}
