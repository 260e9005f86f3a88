// pkg/driver/input.go
package driver

import (
	"context"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// ClickElement resolves the element's geometry and dispatches a left-button
// press and release at its center point.
func (d *Driver) ClickElement(ctx context.Context, page target.ID, el runtime.RemoteObjectID) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	g, err := d.elementGeometry(ctx, s, el)
	if err != nil {
		return err
	}
	d.logger.Debug("Clicking element",
		zap.String("page", string(page)),
		zap.Float64("x", g.CenterX),
		zap.Float64("y", g.CenterY))
	return d.dispatchClick(ctx, s, g.CenterX, g.CenterY)
}

// HoverElement moves the pointer to the element's center point.
func (d *Driver) HoverElement(ctx context.Context, page target.ID, el runtime.RemoteObjectID) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	g, err := d.elementGeometry(ctx, s, el)
	if err != nil {
		return err
	}
	return d.dispatchMouse(ctx, s, input.MouseMoved, g.CenterX, g.CenterY, input.None, 0)
}

// HoverAt moves the pointer to the given viewport coordinates.
func (d *Driver) HoverAt(ctx context.Context, page target.ID, x, y float64) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	return d.dispatchMouse(ctx, s, input.MouseMoved, x, y, input.None, 0)
}

// ClickAt hovers over the given viewport coordinates and then clicks there.
func (d *Driver) ClickAt(ctx context.Context, page target.ID, x, y float64) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	if err := d.dispatchMouse(ctx, s, input.MouseMoved, x, y, input.None, 0); err != nil {
		return err
	}
	return d.dispatchClick(ctx, s, x, y)
}

// SendKeys focuses the element and dispatches one character event per rune
// of text, in order.
func (d *Driver) SendKeys(ctx context.Context, page target.ID, el runtime.RemoteObjectID, text string) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	if err := s.Send(ctx, dom.CommandFocus, &focusParams{ObjectID: el}, nil); err != nil {
		return err
	}
	for _, r := range text {
		params := &dispatchKeyEventParams{Type: input.KeyChar, Text: string(r)}
		if err := s.Send(ctx, input.CommandDispatchKeyEvent, params, nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) dispatchClick(ctx context.Context, s session.Sender, x, y float64) error {
	if err := d.dispatchMouse(ctx, s, input.MousePressed, x, y, input.Left, 1); err != nil {
		return err
	}
	return d.dispatchMouse(ctx, s, input.MouseReleased, x, y, input.Left, 1)
}

func (d *Driver) dispatchMouse(ctx context.Context, s session.Sender, typ input.MouseType, x, y float64, button input.MouseButton, clickCount int64) error {
	params := &dispatchMouseEventParams{
		Type:       typ,
		X:          x,
		Y:          y,
		Button:     button,
		ClickCount: clickCount,
	}
	return s.Send(ctx, input.CommandDispatchMouseEvent, params, nil)
}
