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

	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/log"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

type addPaymentParams struct {
	SlotID int     `validate:"required,min=1,max=99999"`
	Amount float64 `validate:"required,gt=0"`
	Days   int     `validate:"required,min=1,max=365"`
}

// AddPayment appends a payment ledger entry to an occupied resident
// slot, covering the period from now through the given number of
// days. The ledger is record keeping only: it never feeds the
// revenue accumulators, which are driven exclusively by deallocation
// fees.
func (uc *UseCase) AddPayment(
	ctx context.Context, lot repo.Lot, id int, amount float64, days int,
) (*model.Slot, error) {
	if err := checkParams(addPaymentParams{
		SlotID: id,
		Amount: amount,
		Days:   days,
	}); err != nil {
		return nil, err
	}
	s, ok := lot.FindByID(id)
	if !ok {
		return nil, cerr.SlotNotFound(
			fmt.Errorf("slot %d does not exist", id),
		)
	}
	if !s.Occupied() || s.Type != model.SlotTypeResident {
		return nil, cerr.InvalidParam(fmt.Errorf(
			"slot %d is not an occupied resident slot", id,
		))
	}
	start := uc.now()
	end := start.Add(time.Duration(days) * 24 * time.Hour)
	p := model.NewPayment(start, end, amount)
	s.Payments = append(s.Payments, p)
	log.Info(ctx, "payment recorded",
		slog.Int("slot", id),
		slog.String("payment", p.ID.String()),
		slog.Float64("amount", amount),
	)
	return s, nil
}

// SetResidentDueDate seeds or rewrites the billing schedule of a
// slot. A slot with no due date set never accrues resident overdue
// fees, so an operator registers the first due date through this
// operation; afterwards the date advances automatically as arrears
// are collected at deallocation time.
func (uc *UseCase) SetResidentDueDate(
	ctx context.Context, lot repo.Lot, id int, due time.Time,
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
	s.ResidentDueDate = due
	log.Info(ctx, "resident due date set",
		slog.Int("slot", id), slog.Time("due", due),
	)
	return s, nil
}

// MonthlyPaymentTotal sums the resident payment ledger entries whose
// coverage started within the given calendar month, evaluated in the
// lot time zone.
func (uc *UseCase) MonthlyPaymentTotal(
	_ context.Context, lot repo.Lot, year int, month time.Month,
) (float64, error) {
	if month < time.January || month > time.December {
		return 0, cerr.InvalidParam(
			fmt.Errorf("invalid month: %d", month),
		)
	}
	total := 0.0
	for _, s := range lot.All() {
		if s.Type != model.SlotTypeResident {
			continue
		}
		for _, p := range s.Payments {
			start := p.Start.In(uc.loc)
			if start.Year() == year && start.Month() == month {
				total += p.Amount
			}
		}
	}
	return total, nil
}
