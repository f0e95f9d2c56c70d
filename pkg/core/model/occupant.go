// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// SlotType specifies the occupant kind of an occupied slot and decides
// which billing scheme applies. Residents are billed monthly in
// arrears while visitors are billed hourly and are restricted to a
// daytime entry window. Although this enum is numeric, it is
// (de)serialized as a string in the presentation layer for
// readability.
type SlotType int

// Valid values for the SlotType enum.
const (
	SlotTypeInvalid SlotType = iota // zero value is invalid

	SlotTypeResident // long-term occupant, monthly billing
	SlotTypeVisitor  // short-term occupant, hourly billing
)

// ErrUnknownSlotType indicates that a given string may not be parsed
// as a valid/known slot type.
var ErrUnknownSlotType = errors.New("unknown slot type")

// SlotTypeError indicates an invalid slot type, containing the invalid
// type as an integer.
type SlotTypeError int

// Error implements the error interface, returning a string
// representation of the SlotTypeError.
func (e SlotTypeError) Error() string {
	return fmt.Sprintf("invalid slot type: %d", int(e))
}

// Validate returns nil if the SlotType value is valid. For invalid
// values, an instance of SlotTypeError will be returned.
func (t SlotType) Validate() error {
	switch t {
	case SlotTypeResident, SlotTypeVisitor:
		return nil
	default:
		return SlotTypeError(t)
	}
}

// String converts the SlotType enum to a string. Invalid type causes
// a panic.
func (t SlotType) String() string {
	switch t {
	case SlotTypeResident:
		return "resident"
	case SlotTypeVisitor:
		return "visitor"
	default:
		panic(SlotTypeError(t))
	}
}

// ParseSlotType parses the given string and returns a SlotType.
// For invalid strings, SlotTypeInvalid and ErrUnknownSlotType will be
// returned.
func ParseSlotType(t string) (SlotType, error) {
	switch t {
	case "resident":
		return SlotTypeResident, nil
	case "visitor":
		return SlotTypeVisitor, nil
	default:
		return SlotTypeInvalid, ErrUnknownSlotType
	}
}
