// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/communitylot/lotkeeper/pkg/core/model"
)

var (
	reportJSON bool
	reportType string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Lot occupancy, revenue, and utilization reports",
}

var reportStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the lot statistics snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		st := env.uc.Statistics(ctx, lot)
		// rollover may have reset the revenue counters
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		if reportJSON {
			return printJSON(st)
		}
		fmt.Printf("slots: %d total, %d occupied, %d free (%.1f%%)\n",
			st.TotalSlots, st.OccupiedSlots, st.FreeSlots,
			st.OccupancyRate,
		)
		fmt.Printf("vehicles: %d resident, %d visitor\n",
			st.ResidentVehicles, st.VisitorVehicles,
		)
		fmt.Printf("revenue: %.2f today, %.2f this month\n",
			st.TodayRevenue, st.MonthRevenue,
		)
		return nil
	},
}

var reportFreeCmd = &cobra.Command{
	Use:   "free",
	Short: "List the free slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		return printSlots(env.uc.FreeSlots(ctx, lot), env.uc.Now(), reportJSON)
	},
}

var reportOccupiedCmd = &cobra.Command{
	Use:   "occupied",
	Short: "List the occupied slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		return printSlots(
			env.uc.OccupiedSlots(ctx, lot), env.uc.Now(), reportJSON,
		)
	},
}

var durationDesc bool

var reportDurationCmd = &cobra.Command{
	Use:   "duration",
	Short: "List the occupied slots ordered by parked time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		slots := env.uc.SlotsByDuration(ctx, lot, !durationDesc)
		return printSlots(slots, env.uc.Now(), reportJSON)
	},
}

var reportDailyCmd = &cobra.Command{
	Use:   "daily [<date>]",
	Short: "Count the vehicles which entered on a given day",
	Long: `Count the currently parked vehicles of the given --type
which entered on the given YYYY-MM-DD day in the lot time zone.
Omitting the date counts today's entries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		typ, err := model.ParseSlotType(reportType)
		if err != nil {
			return err
		}
		date := env.uc.Now()
		if len(args) == 1 {
			loc, err := env.cfg.Location()
			if err != nil {
				return err
			}
			date, err = time.ParseInLocation("2006-01-02", args[0], loc)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		count, err := env.uc.CountDailyParking(ctx, lot, date, typ)
		if err != nil {
			return err
		}
		fmt.Printf("%s entries on %s: %d\n",
			typ, date.Format("2006-01-02"), count,
		)
		return nil
	},
}

var reportMonthlyCmd = &cobra.Command{
	Use:   "monthly <year> <month>",
	Short: "Count the vehicles which entered in a given month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseYearMonth(args[0], args[1])
		if err != nil {
			return err
		}
		typ, err := model.ParseSlotType(reportType)
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
		count, err := env.uc.CountMonthlyParking(ctx, lot, year, month, typ)
		if err != nil {
			return err
		}
		fmt.Printf("%s entries in %d-%02d: %d\n", typ, year, month, count)
		return nil
	},
}

func init() {
	reportCmd.PersistentFlags().BoolVar(
		&reportJSON, "json", false, "render as JSON",
	)
	reportDurationCmd.Flags().BoolVar(
		&durationDesc, "desc", false, "longest stay first",
	)
	for _, cmd := range []*cobra.Command{reportDailyCmd, reportMonthlyCmd} {
		cmd.Flags().StringVar(
			&reportType, "type", "visitor",
			"occupant type: resident or visitor",
		)
	}
	reportCmd.AddCommand(
		reportStatsCmd, reportFreeCmd, reportOccupiedCmd,
		reportDurationCmd, reportDailyCmd, reportMonthlyCmd,
	)
	rootCmd.AddCommand(reportCmd)
}
