// File: cmd/find.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/cdpdriver/pkg/driver"
)

var findStrategy string

var findCmd = &cobra.Command{
	Use:   "find SELECTOR",
	Short: "Locate elements and print their references.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			refs, err := dc.driver.FindElements(ctx, dc.page, driver.Strategy(findStrategy), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, refs)
		})
	},
}

func init() {
	findCmd.Flags().StringVarP(&findStrategy, "strategy", "s", string(driver.StrategyCSSSelector),
		`locator strategy ("css selector" or "tag name")`)
	rootCmd.AddCommand(findCmd)
}
