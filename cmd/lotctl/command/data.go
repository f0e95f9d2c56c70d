// Copyright (c) 2025 The Lotkeeper Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export and import the persisted lot state",
}

var dataExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write a copy of the lot state to another file",
	Args:  cobra.ExactArgs(1),
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
		if err := env.uc.Save(ctx, lot, args[0]); err != nil {
			return err
		}
		fmt.Printf("exported %d slots to %s\n", lot.TotalSlots(), args[0])
		return nil
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the lot state with the contents of another file",
	Long: `Replace the lot state with the contents of another data
file. The imported state fully overwrites the configured data file;
payment ledgers are not part of the persisted format and do not
survive the transfer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		lot, err := env.uc.Load(ctx, args[0])
		if err != nil {
			return err
		}
		if err := env.saveLot(ctx, lot); err != nil {
			return err
		}
		fmt.Printf("imported %d slots from %s\n", lot.TotalSlots(), args[0])
		return nil
	},
}

func init() {
	dataCmd.AddCommand(dataExportCmd, dataImportCmd)
	rootCmd.AddCommand(dataCmd)
}
