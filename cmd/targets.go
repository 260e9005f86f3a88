// File: cmd/targets.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the page targets open in the browser.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			pages, err := dc.manager.Pages(ctx)
			if err != nil {
				return err
			}

			type pageInfo struct {
				TargetID string `json:"targetId"`
				Title    string `json:"title"`
				URL      string `json:"url"`
			}
			out := make([]pageInfo, 0, len(pages))
			for _, p := range pages {
				out = append(out, pageInfo{
					TargetID: string(p.TargetID),
					Title:    p.Title,
					URL:      p.URL,
				})
			}
			return printJSON(cmd, out)
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
