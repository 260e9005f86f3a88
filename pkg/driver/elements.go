// pkg/driver/elements.go
package driver

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// Strategy selects how FindElements locates nodes.
type Strategy string

const (
	StrategyCSSSelector Strategy = "css selector"
	StrategyTagName     Strategy = "tag name"
	// StrategyIframe always yields an empty result without querying.
	// Frame content is reached by attaching to the frame's own target, so a
	// query against the parent document would resolve the wrong nodes.
	StrategyIframe Strategy = "iframe"
)

// Rect is a bounding client rect as reported by the element itself.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FindElements runs a document-root query for the selector and wraps each
// matched node as an element reference. Only the css selector and tag name
// strategies query; iframe short-circuits to an empty set, and anything
// else is rejected.
func (d *Driver) FindElements(ctx context.Context, page target.ID, strategy Strategy, selector string) ([]ElementRef, error) {
	switch strategy {
	case StrategyCSSSelector, StrategyTagName:
	case StrategyIframe:
		return []ElementRef{}, nil
	default:
		return nil, fmt.Errorf("unsupported locator strategy %q", strategy)
	}

	s, err := d.session(page)
	if err != nil {
		return nil, err
	}

	var doc getDocumentReturns
	if err := s.Send(ctx, dom.CommandGetDocument, &getDocumentParams{}, &doc); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("document has no root node")
	}

	var matches querySelectorAllReturns
	params := &querySelectorAllParams{NodeID: doc.Root.NodeID, Selector: selector}
	if err := s.Send(ctx, dom.CommandQuerySelectorAll, params, &matches); err != nil {
		return nil, err
	}

	// Node ids resolve to object ids independently; issue the lookups
	// concurrently and await them jointly.
	refs := make([]ElementRef, len(matches.NodeIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, nodeID := range matches.NodeIDs {
		g.Go(func() error {
			var res resolveNodeReturns
			if err := s.Send(gctx, dom.CommandResolveNode, &resolveNodeParams{NodeID: nodeID}, &res); err != nil {
				return err
			}
			if res.Object == nil || res.Object.ObjectID == "" {
				return fmt.Errorf("node %d resolved without an object id", nodeID)
			}
			refs[i] = ElementRef{ObjectID: res.Object.ObjectID}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// GetElementAttribute returns the value of the named attribute. A missing
// attribute is reported as unset, not as an error.
func (d *Driver) GetElementAttribute(ctx context.Context, page target.ID, el runtime.RemoteObjectID, name string) (string, bool, error) {
	s, err := d.session(page)
	if err != nil {
		return "", false, err
	}
	nodeID, err := d.requestNode(ctx, s, el)
	if err != nil {
		return "", false, err
	}

	var attrs getAttributesReturns
	if err := s.Send(ctx, dom.CommandGetAttributes, &getAttributesParams{NodeID: nodeID}, &attrs); err != nil {
		return "", false, err
	}
	// The list interleaves names and values.
	for i := 0; i+1 < len(attrs.Attributes); i += 2 {
		if attrs.Attributes[i] == name {
			return attrs.Attributes[i+1], true, nil
		}
	}
	return "", false, nil
}

// ClearElement resets the element's value attribute to the empty string.
func (d *Driver) ClearElement(ctx context.Context, page target.ID, el runtime.RemoteObjectID) error {
	s, err := d.session(page)
	if err != nil {
		return err
	}
	nodeID, err := d.requestNode(ctx, s, el)
	if err != nil {
		return err
	}
	params := &setAttributeValueParams{NodeID: nodeID, Name: "value", Value: ""}
	return s.Send(ctx, dom.CommandSetAttributeValue, params, nil)
}

// GetElementTagName returns the element's lowercased tag name.
func (d *Driver) GetElementTagName(ctx context.Context, page target.ID, el runtime.RemoteObjectID) (string, error) {
	s, err := d.session(page)
	if err != nil {
		return "", err
	}
	var tag string
	err = d.callOnObject(ctx, s, el, "function() { return this.tagName.toLowerCase(); }", &tag)
	return tag, err
}

// GetElementRect returns the element's bounding client rect.
func (d *Driver) GetElementRect(ctx context.Context, page target.ID, el runtime.RemoteObjectID) (Rect, error) {
	s, err := d.session(page)
	if err != nil {
		return Rect{}, err
	}
	var rect Rect
	fn := "function() { const r = this.getBoundingClientRect(); return { x: r.x, y: r.y, width: r.width, height: r.height }; }"
	err = d.callOnObject(ctx, s, el, fn, &rect)
	return rect, err
}

// requestNode converts an object id into the backend's numeric node id.
func (d *Driver) requestNode(ctx context.Context, s session.Sender, el runtime.RemoteObjectID) (cdp.NodeID, error) {
	var res requestNodeReturns
	if err := s.Send(ctx, dom.CommandRequestNode, &requestNodeParams{ObjectID: el}, &res); err != nil {
		return 0, err
	}
	return res.NodeID, nil
}
