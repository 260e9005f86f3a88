// File: cmd/scroll.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/cdpdriver/pkg/driver"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll {top|bottom|up|down}",
	Short: "Scroll the page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			return dc.driver.ScrollPage(ctx, dc.page, driver.ScrollTarget(args[0]))
		})
	},
}

func init() {
	rootCmd.AddCommand(scrollCmd)
}
