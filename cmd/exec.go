// File: cmd/exec.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec SCRIPT [ARG...]",
	Short: "Run a script against the page's global object.",
	Long: `Run a script against the page's global object.

Arguments after the script are decoded as JSON when possible; a JSON object
carrying the W3C element key passes the referenced element into the script.
Anything that is not valid JSON is passed as a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptArgs := make([]any, 0, len(args)-1)
		for _, raw := range args[1:] {
			scriptArgs = append(scriptArgs, parseScriptArg(raw))
		}
		return withDriver(cmd, func(ctx context.Context, dc *driveContext) error {
			result, err := dc.driver.ExecuteScript(ctx, dc.page, args[0], scriptArgs)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
