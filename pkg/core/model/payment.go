// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one entry of a slot payment ledger, recording an amount
// which was paid for a coverage period. The ledger is record keeping
// only and never drives the lot revenue accumulators; those are fed
// exclusively by deallocation fees.
//
// Payment entries are not included in the persisted lot file format,
// hence, they are lost across a save/load cycle. This is a known
// limitation of the current on-disk format.
type Payment struct {
	ID     uuid.UUID // randomly assigned entry identifier
	Start  time.Time // coverage period start, inclusive
	End    time.Time // coverage period end, exclusive
	Amount float64
}

// NewPayment creates a payment ledger entry with a random identifier
// for the given coverage period and amount.
func NewPayment(start, end time.Time, amount float64) Payment {
	return Payment{
		ID:     uuid.New(),
		Start:  start,
		End:    end,
		Amount: amount,
	}
}
