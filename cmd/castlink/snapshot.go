package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"castlink/internal/manifest"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot manifest.toml out" + manifest.SnapshotExt,
	Short: "Link a manifest and store the result as a binary snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := manifest.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		snap := manifest.TakeSnapshot(reg)
		if err := manifest.WriteSnapshot(args[1], snap); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d classes)\n", args[1], len(snap.Classes))
		return nil
	},
}
