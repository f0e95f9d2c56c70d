// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitylot/lotkeeper/pkg/core/model"
)

var parkType string

var parkCmd = &cobra.Command{
	Use:   "park <id> <owner> <plate> <contact>",
	Short: "Park a vehicle on a free slot",
	Long: `Park a vehicle on a free slot, recording the occupant and
the entry time. Visitor vehicles are admitted only while the
configured daytime entry window is open in the lot time zone.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSlotID(args[0])
		if err != nil {
			return err
		}
		typ, err := model.ParseSlotType(parkType)
		if err != nil {
			return err
		}
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		s, err := env.uc.Allocate(
			ctx, lot, id, args[1], args[2], args[3], typ,
		)
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("parked %s on slot %d (%s) at %s\n",
			s.LicensePlate, s.ID, s.Type,
			s.EntryTime.Format(timeFormat),
		)
		return nil
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave <id>",
	Short: "Release an occupied slot and collect the fee",
	Long: `Release an occupied slot. Visitors are charged per started
hour of their stay; residents are charged their overdue monthly fees,
advancing the due date. The collected fee is accumulated into the
daily and monthly revenue counters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSlotID(args[0])
		if err != nil {
			return err
		}
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		fee, err := env.uc.Deallocate(ctx, lot, id)
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("slot %d released, fee collected: %.2f\n", id, fee)
		return nil
	},
}

func init() {
	parkCmd.Flags().StringVar(
		&parkType, "type", "visitor", "occupant type: resident or visitor",
	)
	rootCmd.AddCommand(parkCmd, leaveCmd)
}
