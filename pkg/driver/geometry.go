// pkg/driver/geometry.go
package driver

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"

	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// Geometry is the rendered shape of an element derived from one content
// quad response: the four corner points plus width, height and center.
// It is ephemeral and never cached.
type Geometry struct {
	Quad    dom.Quad
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
}

// geometryFromQuad derives the box metrics from a content quad, which lists
// the four corners as [x1 y1 x2 y2 x3 y3 x4 y4].
func geometryFromQuad(quad dom.Quad) (Geometry, error) {
	if len(quad) != 8 {
		return Geometry{}, fmt.Errorf("malformed content quad: got %d values, want 8", len(quad))
	}

	minX, maxX := quad[0], quad[0]
	minY, maxY := quad[1], quad[1]
	for i := 2; i < 8; i += 2 {
		x, y := quad[i], quad[i+1]
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}

	return Geometry{
		Quad:    quad,
		Width:   maxX - minX,
		Height:  maxY - minY,
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
	}, nil
}

// elementGeometry fetches the first content quad for the element.
func (d *Driver) elementGeometry(ctx context.Context, s session.Sender, el runtime.RemoteObjectID) (Geometry, error) {
	var res getContentQuadsReturns
	if err := s.Send(ctx, dom.CommandGetContentQuads, &getContentQuadsParams{ObjectID: el}, &res); err != nil {
		return Geometry{}, err
	}
	if len(res.Quads) == 0 {
		return Geometry{}, fmt.Errorf("element %s has no content quads", el)
	}
	return geometryFromQuad(res.Quads[0])
}
