// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/communitylot/lotkeeper/pkg/core/model"
)

const timeFormat = "2006-01-02 15:04:05"

// slotView flattens a slot record for rendering. Zero times render
// as empty strings so free slots do not print epoch placeholders.
type slotView struct {
	ID       int    `json:"id"`
	Location string `json:"location"`
	Status   string `json:"status"`

	Owner        string `json:"owner,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Type         string `json:"type,omitempty"`

	EntryTime string `json:"entry_time,omitempty"`
	ExitTime  string `json:"exit_time,omitempty"`
	DueDate   string `json:"resident_due_date,omitempty"`

	ParkedFor string `json:"parked_for,omitempty"`
}

func newSlotView(s *model.Slot, now time.Time) slotView {
	v := slotView{
		ID:       s.ID,
		Location: s.Location,
		Status:   s.Status.String(),
	}
	if s.Occupied() {
		v.Owner = s.Owner
		v.LicensePlate = s.LicensePlate
		v.Contact = s.Contact
		v.Type = s.Type.String()
		v.ParkedFor = s.ParkedDuration(now).Round(time.Second).String()
	}
	if !s.EntryTime.IsZero() {
		v.EntryTime = s.EntryTime.Format(timeFormat)
	}
	if !s.ExitTime.IsZero() {
		v.ExitTime = s.ExitTime.Format(timeFormat)
	}
	if !s.ResidentDueDate.IsZero() {
		v.DueDate = s.ResidentDueDate.Format(timeFormat)
	}
	return v
}

// printJSON writes any value as indented JSON on stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSlot renders one slot either as JSON or as a human-readable
// block.
func printSlot(s *model.Slot, now time.Time, asJSON bool) error {
	v := newSlotView(s, now)
	if asJSON {
		return printJSON(v)
	}
	fmt.Printf("Slot %d (%s): %s\n", v.ID, v.Location, v.Status)
	if v.Owner != "" {
		fmt.Printf("  owner: %s  plate: %s  contact: %s  type: %s\n",
			v.Owner, v.LicensePlate, v.Contact, v.Type,
		)
	}
	if v.EntryTime != "" {
		fmt.Printf("  entered: %s", v.EntryTime)
		if v.ParkedFor != "" {
			fmt.Printf("  parked for: %s", v.ParkedFor)
		}
		fmt.Println()
	}
	if v.ExitTime != "" {
		fmt.Printf("  last exit: %s\n", v.ExitTime)
	}
	if v.DueDate != "" {
		fmt.Printf("  next due: %s\n", v.DueDate)
	}
	return nil
}

// printSlots renders a slot listing either as JSON or as one line
// per slot.
func printSlots(slots []*model.Slot, now time.Time, asJSON bool) error {
	if asJSON {
		views := make([]slotView, 0, len(slots))
		for _, s := range slots {
			views = append(views, newSlotView(s, now))
		}
		return printJSON(views)
	}
	if len(slots) == 0 {
		fmt.Println("no matching slots")
		return nil
	}
	for _, s := range slots {
		v := newSlotView(s, now)
		if v.Owner == "" {
			fmt.Printf("%5d  %-10s  %s\n", v.ID, v.Status, v.Location)
			continue
		}
		fmt.Printf("%5d  %-10s  %-20s  %-12s  %-8s  %s\n",
			v.ID, v.Status, v.Location,
			v.LicensePlate, v.Type, v.ParkedFor,
		)
	}
	return nil
}
