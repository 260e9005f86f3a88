// File: cmd/runner.go
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/target"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/cdpdriver/internal/config"
	"github.com/xkilldash9x/cdpdriver/internal/observability"
	"github.com/xkilldash9x/cdpdriver/pkg/browser"
	"github.com/xkilldash9x/cdpdriver/pkg/driver"
	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// driveContext bundles everything a command needs to talk to one tab.
type driveContext struct {
	manager  *browser.Manager
	sessions *session.Registry
	driver   *driver.Driver
	page     target.ID
}

// withDriver connects to the browser, resolves the page target, runs fn and
// tears the connection back down.
func withDriver(cmd *cobra.Command, fn func(ctx context.Context, dc *driveContext) error) error {
	logger := observability.GetLogger()

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	mgr, err := browser.NewManager(ctx, logger, cfg.Browser)
	if err != nil {
		return err
	}
	defer mgr.Close()

	sessions := session.NewRegistry(mgr.Context(), logger)
	defer sessions.Close()

	dc := &driveContext{
		manager:  mgr,
		sessions: sessions,
		driver:   driver.New(sessions, logger, driver.Options{ScreenshotFormat: cfg.Driver.ScreenshotFormat}),
	}
	if dc.page, err = resolvePage(ctx, mgr); err != nil {
		return err
	}
	return fn(ctx, dc)
}

// resolvePage honors --target and otherwise picks the first open page.
func resolvePage(ctx context.Context, mgr *browser.Manager) (target.ID, error) {
	if targetFlag != "" {
		return target.ID(targetFlag), nil
	}
	pages, err := mgr.Pages(ctx)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("browser has no open page targets")
	}
	return pages[0].TargetID, nil
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// parseScriptArg interprets a CLI argument for exec: valid JSON is passed
// through as its decoded value (objects may carry the element reference
// key), anything else rides along as a plain string.
func parseScriptArg(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
