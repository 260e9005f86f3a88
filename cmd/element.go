// File: cmd/element.go
package cmd

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/spf13/cobra"
)

var attrCmd = &cobra.Command{
	Use:   "attr OBJECT_ID NAME",
	Short: "Read an attribute from an element.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			value, ok, err := dc.driver.GetElementAttribute(ctx, dc.page, runtime.RemoteObjectID(args[0]), args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("element has no attribute %q", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var tagnameCmd = &cobra.Command{
	Use:   "tagname OBJECT_ID",
	Short: "Print an element's lowercase tag name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			name, err := dc.driver.GetElementTagName(ctx, dc.page, runtime.RemoteObjectID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		})
	},
}

var rectCmd = &cobra.Command{
	Use:   "rect OBJECT_ID",
	Short: "Print an element's bounding client rect as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			rect, err := dc.driver.GetElementRect(ctx, dc.page, runtime.RemoteObjectID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, rect)
		})
	},
}

func init() {
	rootCmd.AddCommand(attrCmd)
	rootCmd.AddCommand(tagnameCmd)
	rootCmd.AddCommand(rectCmd)
}
