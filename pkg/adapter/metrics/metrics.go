// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics decorates the parking lot use case with Prometheus
// instrumentation. Since the core runs without any network listener,
// the collected registry is exported through textfile snapshots
// which a node-exporter style collector can pick up.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/communitylot/lotkeeper/pkg/core/cerr"
	"github.com/communitylot/lotkeeper/pkg/core/model"
	"github.com/communitylot/lotkeeper/pkg/core/repo"
	"github.com/communitylot/lotkeeper/pkg/core/usecase/lotuc"
)

// Instrumented wraps a lot use case, counting lifecycle operations
// by result, tracking lot occupancy and capacity, and observing the
// collected deallocation fees. Non-overridden operations pass
// through to the embedded use case uninstrumented.
type Instrumented struct {
	*lotuc.UseCase

	reg *prometheus.Registry

	operations *prometheus.CounterVec
	occupancy  prometheus.Gauge
	capacity   prometheus.Gauge
	fees       prometheus.Histogram
}

// NewInstrumented decorates the given use case with a fresh metric
// registry.
func NewInstrumented(uc *lotuc.UseCase) *Instrumented {
	reg := prometheus.NewRegistry()
	ins := &Instrumented{
		UseCase: uc,
		reg:     reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotkeeper_operations_total",
			Help: "Count of lot lifecycle operations by result",
		}, []string{"operation", "result"}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lotkeeper_occupied_slots",
			Help: "Number of currently occupied slots",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lotkeeper_total_slots",
			Help: "Number of slots attached to the lot",
		}),
		fees: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lotkeeper_deallocation_fee",
			Help:    "Fees collected at deallocation time",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8),
		}),
	}
	reg.MustRegister(
		ins.operations, ins.occupancy, ins.capacity, ins.fees,
	)
	return ins
}

// WriteTextfile dumps the registry in the Prometheus text exposition
// format to the given path, atomically replacing any previous
// snapshot.
func (ins *Instrumented) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, ins.reg)
}

// observe tags one finished operation with its result: "success" or
// the service error code.
func (ins *Instrumented) observe(op string, err error) {
	result := "success"
	if err != nil {
		result = cerr.CodeOf(err).String()
	}
	ins.operations.WithLabelValues(op, result).Inc()
}

// track refreshes the occupancy and capacity gauges from the lot
// counters.
func (ins *Instrumented) track(lot repo.Lot) {
	ins.occupancy.Set(float64(lot.OccupiedCount()))
	ins.capacity.Set(float64(lot.TotalSlots()))
}

// AddSlot instruments UseCase.AddSlot.
func (ins *Instrumented) AddSlot(
	ctx context.Context, lot repo.Lot, id int, location string,
) (*model.Slot, error) {
	s, err := ins.UseCase.AddSlot(ctx, lot, id, location)
	ins.observe("add_slot", err)
	ins.track(lot)
	return s, err
}

// DeleteSlot instruments UseCase.DeleteSlot.
func (ins *Instrumented) DeleteSlot(
	ctx context.Context, lot repo.Lot, id int,
) error {
	err := ins.UseCase.DeleteSlot(ctx, lot, id)
	ins.observe("delete_slot", err)
	ins.track(lot)
	return err
}

// Allocate instruments UseCase.Allocate.
func (ins *Instrumented) Allocate(
	ctx context.Context,
	lot repo.Lot,
	id int,
	owner, plate, contact string,
	typ model.SlotType,
) (*model.Slot, error) {
	s, err := ins.UseCase.Allocate(
		ctx, lot, id, owner, plate, contact, typ,
	)
	ins.observe("allocate", err)
	ins.track(lot)
	return s, err
}

// Deallocate instruments UseCase.Deallocate, observing the collected
// fee on success.
func (ins *Instrumented) Deallocate(
	ctx context.Context, lot repo.Lot, id int,
) (float64, error) {
	fee, err := ins.UseCase.Deallocate(ctx, lot, id)
	ins.observe("deallocate", err)
	ins.track(lot)
	if err == nil && fee > 0 {
		ins.fees.Observe(fee)
	}
	return fee, err
}
