// File: cmd/click.go
package cmd

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/spf13/cobra"
)

var (
	clickX float64
	clickY float64
	hoverX float64
	hoverY float64
)

var clickCmd = &cobra.Command{
	Use:   "click [OBJECT_ID]",
	Short: "Click an element by reference, or a point with --x/--y.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byPoint := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
		if byPoint == (len(args) == 1) {
			return fmt.Errorf("provide either an element object id or --x/--y coordinates")
		}
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			if byPoint {
				return dc.driver.ClickAt(ctx, dc.page, clickX, clickY)
			}
			return dc.driver.ClickElement(ctx, dc.page, runtime.RemoteObjectID(args[0]))
		})
	},
}

var hoverCmd = &cobra.Command{
	Use:   "hover [OBJECT_ID]",
	Short: "Move the pointer over an element, or to a point with --x/--y.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byPoint := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
		if byPoint == (len(args) == 1) {
			return fmt.Errorf("provide either an element object id or --x/--y coordinates")
		}
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			if byPoint {
				return dc.driver.HoverAt(ctx, dc.page, hoverX, hoverY)
			}
			return dc.driver.HoverElement(ctx, dc.page, runtime.RemoteObjectID(args[0]))
		})
	},
}

func init() {
	clickCmd.Flags().Float64Var(&clickX, "x", 0, "viewport x coordinate")
	clickCmd.Flags().Float64Var(&clickY, "y", 0, "viewport y coordinate")
	hoverCmd.Flags().Float64Var(&hoverX, "x", 0, "viewport x coordinate")
	hoverCmd.Flags().Float64Var(&hoverY, "y", 0, "viewport y coordinate")
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(hoverCmd)
}
