// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Manage resident payment records",
}

var paymentAddCmd = &cobra.Command{
	Use:   "add <id> <amount> <days>",
	Short: "Record a resident payment covering the next <days> days",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSlotID(args[0])
		if err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		days, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid day count %q: %w", args[2], err)
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
		s, err := env.uc.AddPayment(ctx, lot, id, amount, days)
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		last := s.Payments[len(s.Payments)-1]
		fmt.Printf("payment %s recorded on slot %d: %.2f through %s\n",
			last.ID, s.ID, last.Amount, last.End.Format(timeFormat),
		)
		return nil
	},
}

var paymentDueCmd = &cobra.Command{
	Use:   "due <id> <date>",
	Short: "Set the next resident fee due date of a slot",
	Long: `Set the next resident fee due date of a slot as a
YYYY-MM-DD date in the lot time zone. A slot with no due date never
accrues resident overdue fees.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSlotID(args[0])
		if err != nil {
			return err
		}
		env, err := buildEnv()
		if err != nil {
			return err
		}
		loc, err := env.cfg.Location()
		if err != nil {
			return err
		}
		due, err := time.ParseInLocation("2006-01-02", args[1], loc)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", args[1], err)
		}
		ctx := cmd.Context()
		lot, err := env.loadLot(ctx)
		if err != nil {
			return err
		}
		s, err := env.uc.SetResidentDueDate(ctx, lot, id, due)
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("slot %d next due date: %s\n",
			s.ID, s.ResidentDueDate.Format("2006-01-02"),
		)
		return nil
	},
}

var paymentTotalCmd = &cobra.Command{
	Use:   "total <year> <month>",
	Short: "Sum the resident payments recorded in a calendar month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseYearMonth(args[0], args[1])
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
		total, err := env.uc.MonthlyPaymentTotal(ctx, lot, year, month)
		if err != nil {
			return err
		}
		fmt.Printf("resident payments in %d-%02d: %.2f\n",
			year, month, total,
		)
		return nil
	},
}

// parseYearMonth parses a pair of year and month CLI arguments.
func parseYearMonth(ys, ms string) (int, time.Month, error) {
	year, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q: %w", ys, err)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", ms, err)
	}
	return year, time.Month(m), nil
}

func init() {
	paymentCmd.AddCommand(paymentAddCmd, paymentDueCmd, paymentTotalCmd)
	rootCmd.AddCommand(paymentCmd)
}
