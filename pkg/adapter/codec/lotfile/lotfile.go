// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotfile is the persistence codec adapter for the
// line-oriented, pipe-delimited lot file format:
//
//	LOT|<totalSlots>
//	REV|<todayRevenue>|<monthRevenue>|<lastUpdate>
//	SLOT|<id>|<location>|<owner>|<plate>|<contact>|<type>|<entry>|<exit>|<status>|<due>
//
// One record per line, timestamps as Unix epoch seconds, enums as
// small integers (type: 0=resident 1=visitor; status: 0=free
// 1=occupied). Exactly one LOT line must appear first. The REV record
// carries the revenue accumulators so collected fees survive process
// restarts; files without one load with zero accumulators. Free slots
// are written with empty occupant fields and zero times. Malformed
// or short lines are skipped and unknown line prefixes are ignored,
// keeping the reader forward compatible at the cost of dropping
// unknown data. Payment ledgers are not part of the format and are
// lost across a save/load cycle.
package lotfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/communitylot/lotkeeper/pkg/adapter/store/memrp"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
)

// Line prefixes of the known record kinds.
const (
	lotTag  = "LOT"
	revTag  = "REV"
	slotTag = "SLOT"
)

// Field counts per record kind, including the tag itself.
const (
	revFields  = 4
	slotFields = 11
)

// Wire values of the slot type and status enums. The on-disk codes
// are frozen and zero-based, unlike the in-memory enums whose zero
// value is invalid, hence the explicit mapping.
const (
	wireTypeResident = 0
	wireTypeVisitor  = 1

	wireStatusFree     = 0
	wireStatusOccupied = 1
)

// Codec reads and writes whole-lot state in the lot file format. It
// implements the repo.LotCodec port.
type Codec struct{}

var _ repo.LotCodec = Codec{}

// New creates a lot file codec.
func New() Codec {
	return Codec{}
}

// Save serializes the lot to the given path, truncating any previous
// content. The write is blocking and not atomic; a crash mid-write
// can leave a corrupt file behind, which is an accepted limitation
// of this format.
func (c Codec) Save(path string, lot repo.Lot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	if err := c.Encode(f, lot); err != nil {
		return fmt.Errorf("encoding lot: %w", err)
	}
	return nil
}

// Load deserializes a fresh lot from the given path.
func (c Codec) Load(path string) (repo.Lot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	lot, err := c.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding lot: %w", err)
	}
	return lot, nil
}

// Encode writes the lot records to w, one line per record, with the
// LOT header first.
func (c Codec) Encode(w io.Writer, lot repo.Lot) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(
		bw, "%s|%d\n", lotTag, lot.TotalSlots(),
	); err != nil {
		return err
	}
	rev := lot.Revenue()
	if _, err := fmt.Fprintf(
		bw, "%s|%g|%g|%d\n",
		revTag, rev.Today, rev.Month, epoch(rev.LastUpdate),
	); err != nil {
		return err
	}
	for _, s := range lot.All() {
		if err := encodeSlot(bw, s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encodeSlot(w io.Writer, s *model.Slot) error {
	owner, plate, contact := s.Owner, s.LicensePlate, s.Contact
	var entry, exit, due int64
	var status int
	if s.Occupied() {
		status = wireStatusOccupied
		entry = epoch(s.EntryTime)
		exit = epoch(s.ExitTime)
		due = epoch(s.ResidentDueDate)
	} else {
		// free slots carry no occupant record on disk
		owner, plate, contact = "", "", ""
	}
	_, err := fmt.Fprintf(w, "%s|%d|%s|%s|%s|%s|%d|%d|%d|%d|%d\n",
		slotTag, s.ID, s.Location, owner, plate, contact,
		wireType(s.Type), entry, exit, status, due,
	)
	return err
}

// Decode reads lot records from r. The LOT header must be present
// with a positive slot total, otherwise no lot is returned. Slot
// lines which are short, malformed, or precede the header are
// skipped; lines with unknown prefixes are ignored. The occupancy
// counter of the returned lot is recomputed by counting occupied
// slot records instead of trusting any stored field.
func (c Codec) Decode(r io.Reader) (*memrp.Lot, error) {
	var lot *memrp.Lot
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		fields := strings.Split(line, "|")
		switch fields[0] {
		case lotTag:
			if lot != nil {
				continue // only the first header counts
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("short LOT header: %q", line)
			}
			total, err := strconv.Atoi(fields[1])
			if err != nil || total <= 0 {
				return nil, fmt.Errorf(
					"invalid LOT slot total: %q", fields[1],
				)
			}
			lot = memrp.New()
		case revTag:
			if lot == nil {
				continue // revenue record before the header
			}
			decodeRevenue(fields, lot.Revenue())
		case slotTag:
			if lot == nil {
				continue // slot record before the header
			}
			s, ok := decodeSlot(fields)
			if !ok {
				continue // malformed records are skipped
			}
			if err := lot.AddSlot(s); err != nil {
				continue // duplicate id, keep the first record
			}
		default:
			// unknown prefixes are ignored for forward compatibility
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lot file: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("missing LOT header")
	}
	return lot, nil
}

// decodeRevenue parses a REV record into the revenue accumulators.
// Malformed records leave the accumulators untouched.
func decodeRevenue(fields []string, rev *model.Revenue) {
	if len(fields) < revFields {
		return
	}
	today, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return
	}
	month, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return
	}
	last, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return
	}
	rev.Today = today
	rev.Month = month
	rev.LastUpdate = fromEpoch(last)
}

func decodeSlot(fields []string) (*model.Slot, bool) {
	if len(fields) < slotFields {
		return nil, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil || id <= 0 {
		return nil, false
	}
	wt, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, false
	}
	entry, err := strconv.ParseInt(fields[7], 10, 64)
	if err != nil {
		return nil, false
	}
	exit, err := strconv.ParseInt(fields[8], 10, 64)
	if err != nil {
		return nil, false
	}
	ws, err := strconv.Atoi(fields[9])
	if err != nil {
		return nil, false
	}
	due, err := strconv.ParseInt(fields[10], 10, 64)
	if err != nil {
		return nil, false
	}
	typ, ok := modelType(wt)
	if !ok {
		return nil, false
	}
	status, ok := modelStatus(ws)
	if !ok {
		return nil, false
	}
	return &model.Slot{
		ID:              id,
		Location:        fields[2],
		Owner:           fields[3],
		LicensePlate:    fields[4],
		Contact:         fields[5],
		Type:            typ,
		EntryTime:       fromEpoch(entry),
		ExitTime:        fromEpoch(exit),
		Status:          status,
		ResidentDueDate: fromEpoch(due),
	}, true
}

func epoch(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromEpoch(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0)
}

func wireType(t model.SlotType) int {
	if t == model.SlotTypeVisitor {
		return wireTypeVisitor
	}
	return wireTypeResident
}

func modelType(v int) (model.SlotType, bool) {
	switch v {
	case wireTypeResident:
		return model.SlotTypeResident, true
	case wireTypeVisitor:
		return model.SlotTypeVisitor, true
	default:
		return model.SlotTypeInvalid, false
	}
}

func modelStatus(v int) (model.SlotStatus, bool) {
	switch v {
	case wireStatusFree:
		return model.SlotStatusFree, true
	case wireStatusOccupied:
		return model.SlotStatusOccupied, true
	default:
		return model.SlotStatusInvalid, false
	}
}
