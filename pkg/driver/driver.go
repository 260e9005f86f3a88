// pkg/driver/driver.go

// Package driver translates WebDriver-style element commands into Chrome
// DevTools Protocol calls issued over one persistent debugging session per
// page target. Each command is a short sequence of protocol round-trips
// with no retries and no state beyond the shared session cache.
package driver

import (
	"context"
	"encoding/json"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// ElementKey is the property name under which element references are nested
// in returned objects, as expected by W3C WebDriver clients.
const ElementKey = "element-6066-11e4-a52e-4f735466cecf"

// ElementRef is an opaque reference to a remote DOM node. The wrapped
// object id is a handle into the browser's object graph; no node state is
// held locally.
type ElementRef struct {
	ObjectID runtime.RemoteObjectID `json:"element-6066-11e4-a52e-4f735466cecf"`
}

// SessionSource yields the CDP session for a page target. Implementations
// are expected to memoize; the driver asks for the session on every command.
type SessionSource interface {
	Session(page target.ID) (session.Sender, error)
}

// Options carries command-layer tunables.
type Options struct {
	// ScreenshotFormat is the Page.captureScreenshot image format.
	// Defaults to png.
	ScreenshotFormat string
}

// Driver executes element and page commands against targets reachable
// through its session source. Driver itself is stateless and safe for
// concurrent use as long as its source is.
type Driver struct {
	source           SessionSource
	logger           *zap.Logger
	screenshotFormat string
}

// New creates a Driver on top of a session source.
func New(source SessionSource, logger *zap.Logger, opts Options) *Driver {
	format := opts.ScreenshotFormat
	if format == "" {
		format = "png"
	}
	return &Driver{
		source:           source,
		logger:           logger.Named("driver"),
		screenshotFormat: format,
	}
}

func (d *Driver) session(page target.ID) (session.Sender, error) {
	return d.source.Session(page)
}

// callOnObject invokes fn (a function declaration) with this bound to the
// remote object and decodes the by-value result into out when non-nil.
func (d *Driver) callOnObject(ctx context.Context, s session.Sender, id runtime.RemoteObjectID, fn string, out any) error {
	var res callFunctionOnReturns
	params := &callFunctionOnParams{
		FunctionDeclaration: fn,
		ObjectID:            id,
		ReturnByValue:       true,
	}
	if err := s.Send(ctx, runtime.CommandCallFunctionOn, params, &res); err != nil {
		return err
	}
	if res.ExceptionDetails != nil {
		return res.ExceptionDetails
	}
	if out == nil || res.Result == nil || res.Result.Value == nil {
		return nil
	}
	return json.Unmarshal(res.Result.Value, out)
}

// evaluate runs an expression in the page's default execution context.
func (d *Driver) evaluate(ctx context.Context, s session.Sender, expr string, byValue bool) (*remoteObject, error) {
	var res evaluateReturns
	params := &evaluateParams{Expression: expr, ReturnByValue: byValue}
	if err := s.Send(ctx, runtime.CommandEvaluate, params, &res); err != nil {
		return nil, err
	}
	if res.ExceptionDetails != nil {
		return nil, res.ExceptionDetails
	}
	return res.Result, nil
}
