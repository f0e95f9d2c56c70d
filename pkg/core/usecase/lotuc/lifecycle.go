// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/communitylot/lotkeeper/pkg/core/billing"
	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/log"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

type slotIDParam struct {
	SlotID int `validate:"required,min=1,max=99999"`
}

type addSlotParams struct {
	SlotID   int    `validate:"required,min=1,max=99999"`
	Location string `validate:"required,max=99,wiresafe"`
}

type allocateParams struct {
	SlotID  int    `validate:"required,min=1,max=99999"`
	Owner   string `validate:"required,max=49,wiresafe"`
	Plate   string `validate:"required,min=5,max=49,wiresafe"`
	Contact string `validate:"required,number,min=8,max=49"`
}

type updateSlotParams struct {
	SlotID   int    `validate:"required,min=1,max=99999"`
	Location string `validate:"omitempty,max=99,wiresafe"`
	Owner    string `validate:"omitempty,max=49,wiresafe"`
	Contact  string `validate:"omitempty,number,min=8,max=49"`
}

// checkParams runs the shared validator over a tagged parameter
// struct and maps violations to the invalid-param service code.
func checkParams(p any) error {
	if err := validate.Struct(p); err != nil {
		return cerr.InvalidParam(fmt.Errorf("validating input: %w", err))
	}
	return nil
}

// AddSlot creates a new free slot with the given id and location and
// attaches it to the lot, growing the capacity counter. Ids must fall
// in [1, 99999] and the location must be a non-empty descriptor.
// Duplicate ids are rejected with a slot-exists error without
// mutating state.
func (uc *UseCase) AddSlot(
	ctx context.Context, lot repo.Lot, id int, location string,
) (*model.Slot, error) {
	if err := checkParams(addSlotParams{
		SlotID:   id,
		Location: location,
	}); err != nil {
		return nil, err
	}
	s := &model.Slot{
		ID:       id,
		Location: location,
		Status:   model.SlotStatusFree,
	}
	if err := lot.AddSlot(s); err != nil {
		return nil, err
	}
	log.Info(ctx, "slot added",
		slog.Int("slot", id), slog.String("location", location),
	)
	return s, nil
}

// DeleteSlot removes a free slot from the lot, shrinking the capacity
// counter. Occupied slots cannot be deleted; the failed attempt
// leaves the lot unchanged.
func (uc *UseCase) DeleteSlot(
	ctx context.Context, lot repo.Lot, id int,
) error {
	if err := checkParams(slotIDParam{SlotID: id}); err != nil {
		return err
	}
	if err := lot.DeleteSlot(id); err != nil {
		return err
	}
	log.Info(ctx, "slot deleted", slog.Int("slot", id))
	return nil
}

// Allocate parks a vehicle on the given slot. The slot must exist and
// be free, the plate must not be held by any occupied slot lot-wide,
// and visitors may only enter while the configured daytime window is
// open in the lot time zone. On success the occupant fields are
// populated, the entry time is recorded, and the occupancy counter
// grows by one.
func (uc *UseCase) Allocate(
	ctx context.Context,
	lot repo.Lot,
	id int,
	owner, plate, contact string,
	typ model.SlotType,
) (*model.Slot, error) {
	if err := checkParams(allocateParams{
		SlotID:  id,
		Owner:   owner,
		Plate:   plate,
		Contact: contact,
	}); err != nil {
		return nil, err
	}
	if err := typ.Validate(); err != nil {
		return nil, cerr.InvalidParam(err)
	}
	s, ok := lot.FindByID(id)
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
	if other, ok := lot.FindByLicense(plate); ok {
		return nil, cerr.LicenseExists(fmt.Errorf(
			"license plate %q is already on slot %d", plate, other.ID,
		))
	}
	now := uc.now()
	if typ == model.SlotTypeVisitor && !uc.window.Contains(now) {
		return nil, cerr.TimeInvalid(fmt.Errorf(
			"visitor entry at local hour %d is outside [%d, %d)",
			now.Hour(), uc.window.StartHour, uc.window.EndHour,
		))
	}
	s, err := lot.Allocate(id, owner, plate, contact, typ, now)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "slot allocated",
		slog.Int("slot", id),
		slog.String("plate", plate),
		slog.String("type", typ.String()),
	)
	return s, nil
}

// Deallocate releases an occupied slot, computing the fee owed by the
// departing occupant. Visitors are charged per started hour of their
// stay; residents are charged their overdue monthly fees, advancing
// the slot due date past now in whole-month increments. A positive
// fee is accumulated into the revenue counters after a revenue-cycle
// rollover check. The computed fee is returned (zero when nothing is
// owed).
func (uc *UseCase) Deallocate(
	ctx context.Context, lot repo.Lot, id int,
) (float64, error) {
	if err := checkParams(slotIDParam{SlotID: id}); err != nil {
		return 0, err
	}
	s, ok := lot.FindByID(id)
	if !ok {
		return 0, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	if !s.Occupied() {
		return 0, cerr.SlotFree(
			fmt.Errorf("slot %d is already free", id),
		)
	}
	now := uc.now()
	var fee float64
	switch s.Type {
	case model.SlotTypeResident:
		var newDue time.Time
		fee, newDue = uc.rates.ResidentOverdueFee(now, s.ResidentDueDate)
		s.ResidentDueDate = newDue
	default:
		fee = uc.rates.VisitorFee(s.EntryTime, now)
	}
	if fee > 0 {
		rev := lot.Revenue()
		billing.UpdateRevenueCycle(rev, now)
		rev.Add(fee)
	}
	if _, err := lot.Deallocate(id, now); err != nil {
		return 0, err
	}
	log.Info(ctx, "slot deallocated",
		slog.Int("slot", id), slog.Float64("fee", fee),
	)
	return fee, nil
}

// UpdateSlotInfo rewrites descriptive fields of a slot. Empty
// arguments leave the corresponding field unchanged. The occupant
// fields (owner and contact) may only be corrected while the slot is
// occupied; for a free slot they are silently skipped since there is
// no occupant record to correct.
func (uc *UseCase) UpdateSlotInfo(
	ctx context.Context,
	lot repo.Lot,
	id int,
	location, owner, contact string,
) (*model.Slot, error) {
	if err := checkParams(updateSlotParams{
		SlotID:   id,
		Location: location,
		Owner:    owner,
		Contact:  contact,
	}); err != nil {
		return nil, err
	}
	s, ok := lot.FindByID(id)
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	if location != "" {
		s.Location = location
	}
	if s.Occupied() {
		if owner != "" {
			s.Owner = owner
		}
		if contact != "" {
			s.Contact = contact
		}
	}
	log.Info(ctx, "slot info updated", slog.Int("slot", id))
	return s, nil
}
