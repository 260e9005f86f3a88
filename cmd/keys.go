// File: cmd/keys.go
package cmd

import (
	"context"

	"github.com/chromedp/cdproto/runtime"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys OBJECT_ID TEXT",
	Short: "Focus an element and type text into it.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			return dc.driver.SendKeys(ctx, dc.page, runtime.RemoteObjectID(args[0]), args[1])
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear OBJECT_ID",
	Short: "Reset an element's value attribute.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			return dc.driver.ClearElement(ctx, dc.page, runtime.RemoteObjectID(args[0]))
		})
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(clearCmd)
}
