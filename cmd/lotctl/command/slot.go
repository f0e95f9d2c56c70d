// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage the slot records of the lot",
}

var slotAddCmd = &cobra.Command{
	Use:   "add <id> <location>",
	Short: "Attach a new free slot to the lot",
	Args:  cobra.ExactArgs(2),
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
		s, err := env.uc.AddSlot(ctx, lot, id, args[1])
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("added slot %d at %q\n", s.ID, s.Location)
		return nil
	},
}

var slotDelCmd = &cobra.Command{
	Use:   "del <id>",
	Short: "Detach a free slot from the lot",
	Args:  cobra.ExactArgs(1),
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
		if err := env.uc.DeleteSlot(ctx, lot, id); err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("deleted slot %d\n", id)
		return nil
	},
}

var (
	updateLocation string
	updateOwner    string
	updateContact  string
)

var slotUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rewrite descriptive fields of a slot",
	Long: `Rewrite descriptive fields of a slot. Only the fields given
through flags change; the occupant fields (owner, contact) apply only
while the slot is occupied.`,
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
		s, err := env.uc.UpdateSlotInfo(
			ctx, lot, id, updateLocation, updateOwner, updateContact,
		)
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("updated slot %d\n", s.ID)
		return nil
	},
}

var (
	findPlate string
	findOwner string
	findJSON  bool
)

var slotFindCmd = &cobra.Command{
	Use:   "find [<id>]",
	Short: "Look up a slot by id, license plate, or owner name",
	Args:  cobra.MaximumNArgs(1),
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
		switch {
		case len(args) == 1:
			id, err := parseSlotID(args[0])
			if err != nil {
				return err
			}
			found, err := env.uc.FindByID(ctx, lot, id)
			if err != nil {
				return err
			}
			return printSlot(found, env.uc.Now(), findJSON)
		case findPlate != "":
			found, err := env.uc.FindByLicense(ctx, lot, findPlate)
			if err != nil {
				return err
			}
			return printSlot(found, env.uc.Now(), findJSON)
		case findOwner != "":
			found, err := env.uc.FindByOwner(ctx, lot, findOwner)
			if err != nil {
				return err
			}
			return printSlot(found, env.uc.Now(), findJSON)
		default:
			return fmt.Errorf("one of <id>, --plate, or --owner is required")
		}
	},
}

// parseSlotID parses a CLI slot id argument.
func parseSlotID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid slot id %q: %w", arg, err)
	}
	return id, nil
}

func init() {
	slotUpdateCmd.Flags().StringVar(
		&updateLocation, "location", "", "new location descriptor",
	)
	slotUpdateCmd.Flags().StringVar(
		&updateOwner, "owner", "", "corrected occupant name",
	)
	slotUpdateCmd.Flags().StringVar(
		&updateContact, "contact", "", "corrected occupant contact",
	)
	slotFindCmd.Flags().StringVar(
		&findPlate, "plate", "", "license plate to look up",
	)
	slotFindCmd.Flags().StringVar(
		&findOwner, "owner", "", "owner name substring to look up",
	)
	slotFindCmd.Flags().BoolVar(&findJSON, "json", false, "render as JSON")
	slotCmd.AddCommand(slotAddCmd, slotDelCmd, slotUpdateCmd, slotFindCmd)
	rootCmd.AddCommand(slotCmd)
}
