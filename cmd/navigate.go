// File: cmd/navigate.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var navigateCmd = &cobra.Command{
	Use:   "navigate URL",
	Short: "Point the page at a URL.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			return dc.driver.Navigate(ctx, dc.page, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(navigateCmd)
}
