// File: cmd/snapshot.go
package cmd

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a DOM snapshot, screenshot and viewport metadata.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			snap, err := dc.driver.Snapshot(ctx, dc.page)
			if err != nil {
				return err
			}
			if snapshotOut != "" {
				data, err := jsoniter.MarshalIndent(snap, "", "  ")
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				if err := os.WriteFile(snapshotOut, data, 0o644); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				return nil
			}
			return printJSON(cmd, snap)
		})
	},
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the page as a base64-encoded image.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			data, err := dc.driver.Screenshot(ctx, dc.page)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), data)
			return nil
		})
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "write the snapshot to a file instead of stdout")
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(screenshotCmd)
}
