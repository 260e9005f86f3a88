// pkg/driver/page.go
package driver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/domsnapshot"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScrollTarget names one of the four supported page scroll behaviors.
type ScrollTarget string

const (
	ScrollTop    ScrollTarget = "top"
	ScrollBottom ScrollTarget = "bottom"
	ScrollUp     ScrollTarget = "up"
	ScrollDown   ScrollTarget = "down"
)

// Viewport is the page's visible size and device pixel ratio.
type Viewport struct {
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	DeviceScaleFactor float64 `json:"deviceScaleFactor"`
}

// PageSnapshot joins a full DOM snapshot, a base64-encoded screenshot and
// the viewport metadata captured at the same moment.
type PageSnapshot struct {
	DOM        json.RawMessage `json:"dom"`
	Screenshot string          `json:"screenshot"`
	Viewport   Viewport        `json:"viewport"`
}

// Navigate points the page at url.
func (d *Driver) Navigate(ctx context.Context, pg target.ID, url string) error {
	s, err := d.session(pg)
	if err != nil {
		return err
	}
	d.logger.Debug("Navigating page", zap.String("page", string(pg)), zap.String("url", url))

	var res navigateReturns
	if err := s.Send(ctx, page.CommandNavigate, &navigateParams{URL: url}, &res); err != nil {
		return err
	}
	if res.ErrorText != "" {
		return fmt.Errorf("navigation to %s failed: %s", url, res.ErrorText)
	}
	return nil
}

// Screenshot captures the page as a base64-encoded image.
func (d *Driver) Screenshot(ctx context.Context, pg target.ID) (string, error) {
	s, err := d.session(pg)
	if err != nil {
		return "", err
	}
	var res captureScreenshotReturns
	params := &captureScreenshotParams{Format: d.screenshotFormat}
	if err := s.Send(ctx, page.CommandCaptureScreenshot, params, &res); err != nil {
		return "", err
	}
	return res.Data, nil
}

// Snapshot fetches the DOM snapshot, screenshot and viewport metadata
// concurrently and returns them once all three have completed.
func (d *Driver) Snapshot(ctx context.Context, pg target.ID) (*PageSnapshot, error) {
	s, err := d.session(pg)
	if err != nil {
		return nil, err
	}

	var snap PageSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var raw json.RawMessage
		params := &captureSnapshotParams{ComputedStyles: []string{}}
		if err := s.Send(gctx, domsnapshot.CommandCaptureSnapshot, params, &raw); err != nil {
			return err
		}
		snap.DOM = raw
		return nil
	})

	g.Go(func() error {
		var res captureScreenshotReturns
		params := &captureScreenshotParams{Format: d.screenshotFormat}
		if err := s.Send(gctx, page.CommandCaptureScreenshot, params, &res); err != nil {
			return err
		}
		snap.Screenshot = res.Data
		return nil
	})

	g.Go(func() error {
		var res evaluateReturns
		params := &evaluateParams{
			Expression:    "({ width: window.innerWidth, height: window.innerHeight, deviceScaleFactor: window.devicePixelRatio })",
			ReturnByValue: true,
		}
		if err := s.Send(gctx, runtime.CommandEvaluate, params, &res); err != nil {
			return err
		}
		if res.ExceptionDetails != nil {
			return res.ExceptionDetails
		}
		if res.Result == nil || res.Result.Value == nil {
			return fmt.Errorf("viewport metrics evaluated to nothing")
		}
		return json.Unmarshal(res.Result.Value, &snap.Viewport)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ScrollPage scrolls the document's scrolling element. The up and down
// targets move by 75% of the viewport height; an unrecognized target fails
// before any protocol call is issued.
func (d *Driver) ScrollPage(ctx context.Context, pg target.ID, t ScrollTarget) error {
	var stmt string
	switch t {
	case ScrollTop:
		stmt = "el.scrollTop = 0;"
	case ScrollBottom:
		stmt = "el.scrollTop = el.scrollHeight;"
	case ScrollUp:
		stmt = "el.scrollTop = el.scrollTop - window.innerHeight * 0.75;"
	case ScrollDown:
		stmt = "el.scrollTop = el.scrollTop + window.innerHeight * 0.75;"
	default:
		return fmt.Errorf("unsupported scroll target %q", t)
	}

	s, err := d.session(pg)
	if err != nil {
		return err
	}
	expr := "(() => { const el = document.scrollingElement || document.body; " + stmt + " })()"
	_, err = d.evaluate(ctx, s, expr, false)
	return err
}
