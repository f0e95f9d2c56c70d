// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotfile_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitylot/lotkeeper/pkg/adapter/codec/lotfile"
	"github.com/communitylot/lotkeeper/pkg/adapter/store/memrp"
	"github.com/communitylot/lotkeeper/pkg/core/model"
)

var entry = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func buildLot(t *testing.T) *memrp.Lot {
	t.Helper()
	r := require.New(t)
	lot := memrp.New()
	for id := 1; id <= 3; id++ {
		r.NoError(lot.AddSlot(&model.Slot{
			ID:       id,
			Location: fmt.Sprintf("row %d", id),
			Status:   model.SlotStatusFree,
		}))
	}
	_, err := lot.Allocate(
		2, "Zhang Wei", "AB123", "13800138000",
		model.SlotTypeResident, entry,
	)
	r.NoError(err)
	return lot
}

func TestEncode(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := buildLot(t)
	s, _ := lot.FindByID(2)
	s.ResidentDueDate = entry.Add(24 * time.Hour)
	rev := lot.Revenue()
	rev.Today = 30
	rev.Month = 512.5
	rev.LastUpdate = entry

	var buf bytes.Buffer
	r.NoError(lotfile.New().Encode(&buf, lot))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	r.Len(lines, 5, "header, revenue, and three slot records")
	assert.Equal(t, "LOT|3", lines[0])
	assert.Equal(t, fmt.Sprintf(
		"REV|30|512.5|%d", entry.Unix(),
	), lines[1])
	assert.Equal(
		t, "SLOT|1|row 1||||0|0|0|0|0", lines[2],
		"free slots carry no occupant fields and zero times",
	)
	assert.Equal(t, fmt.Sprintf(
		"SLOT|2|row 2|Zhang Wei|AB123|13800138000|0|%d|0|1|%d",
		entry.Unix(), entry.Add(24*time.Hour).Unix(),
	), lines[3])
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	lot := buildLot(t)
	rev := lot.Revenue()
	rev.Today = 30
	rev.Month = 500
	rev.LastUpdate = entry
	codec := lotfile.New()
	path := filepath.Join(t.TempDir(), "lot.dat")

	r.NoError(codec.Save(path, lot))
	loaded, err := codec.Load(path)
	r.NoError(err)

	r.Equal(3, loaded.TotalSlots())
	assert.Equal(
		t, 30.0, loaded.Revenue().Today,
		"the daily revenue total survives the round trip",
	)
	assert.Equal(t, 500.0, loaded.Revenue().Month)
	assert.Equal(t, entry.Unix(), loaded.Revenue().LastUpdate.Unix())
	r.Equal(
		1, loaded.OccupiedCount(),
		"the occupancy counter is recomputed from the records",
	)
	s, ok := loaded.FindByID(2)
	r.True(ok)
	assert.Equal(t, "Zhang Wei", s.Owner)
	assert.Equal(t, "AB123", s.LicensePlate)
	assert.Equal(t, model.SlotTypeResident, s.Type)
	assert.Equal(t, model.SlotStatusOccupied, s.Status)
	assert.Equal(t, entry.Unix(), s.EntryTime.Unix())
	assert.True(t, s.ExitTime.IsZero())

	free, ok := loaded.FindByID(1)
	r.True(ok)
	assert.False(t, free.Occupied())
	assert.True(t, free.EntryTime.IsZero())
}

func TestDecode(t *testing.T) {
	t.Parallel()
	codec := lotfile.New()

	t.Run("malformed records are skipped", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		in := strings.Join([]string{
			"SLOT|7|early bird||||0|0|0|0|0", // precedes the header
			"LOT|5",
			"SLOT|1|row 1||||0|0|0|0|0",
			"SLOT|2|short line",
			"SLOT|x|bad id||||0|0|0|0|0",
			"SLOT|3|bad type||||9|0|0|0|0",
			"SLOT|4|bad status||||0|0|0|9|0",
			"SLOT|1|duplicate||||0|0|0|0|0",
			"SLOT|6|B2 | north wall||||0|0|0|0|0", // shifted fields
			"NOTE|free form trailer",
			"SLOT|5|row 5|Li Na|XY987|13800138000|1|100|0|1|0",
		}, "\n")
		lot, err := codec.Decode(strings.NewReader(in))
		r.NoError(err)
		r.Equal(2, lot.TotalSlots(), "only the valid records survive")
		r.Equal(1, lot.OccupiedCount())
		s, ok := lot.FindByID(1)
		r.True(ok)
		r.Equal("row 1", s.Location, "the first duplicate record wins")
		_, ok = lot.FindByID(7)
		r.False(ok, "records before the header are dropped")
		_, ok = lot.FindByID(6)
		r.False(ok, "a separator inside a field shifts the record")
	})
	t.Run("revenue record", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		lot, err := codec.Decode(strings.NewReader(strings.Join([]string{
			"REV|99|99|99", // precedes the header
			"LOT|1",
			"REV|30|512.5|1000",
			"REV|bad|0|0",
			"REV|0|bad|0",
			"REV|short",
			"SLOT|1|row 1||||0|0|0|0|0",
		}, "\n")))
		r.NoError(err)
		rev := lot.Revenue()
		assert.Equal(t, 30.0, rev.Today)
		assert.Equal(t, 512.5, rev.Month)
		assert.Equal(t, int64(1000), rev.LastUpdate.Unix())
	})
	t.Run("no revenue record", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		lot, err := codec.Decode(strings.NewReader(
			"LOT|1\nSLOT|1|row 1||||0|0|0|0|0\n",
		))
		r.NoError(err)
		assert.Zero(
			t, lot.Revenue().Today,
			"older files load with zero accumulators",
		)
		assert.True(t, lot.Revenue().LastUpdate.IsZero())
	})
	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		_, err := codec.Decode(strings.NewReader(
			"SLOT|1|row 1||||0|0|0|0|0\n",
		))
		assert.Error(t, err)
	})
	t.Run("invalid slot total", func(t *testing.T) {
		t.Parallel()
		for _, header := range []string{"LOT|x", "LOT|0", "LOT|-3", "LOT"} {
			_, err := codec.Decode(strings.NewReader(header + "\n"))
			assert.Error(t, err, "header %q must be rejected", header)
		}
	})
	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := codec.Decode(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := lotfile.New().Load(
		filepath.Join(t.TempDir(), "absent.dat"),
	)
	assert.Error(t, err, "a missing file must surface as an error")
}
