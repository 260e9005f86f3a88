// pkg/driver/elements_test.go
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryHandler scripts a document query that matches the given node ids and
// resolves node N to object id "obj-N".
func queryHandler(nodeIDs []cdp.NodeID) func(method string, params, result any) error {
	return func(method string, params, result any) error {
		switch method {
		case dom.CommandGetDocument:
			res := result.(*getDocumentReturns)
			res.Root = &cdp.Node{NodeID: 1}
		case dom.CommandQuerySelectorAll:
			res := result.(*querySelectorAllReturns)
			res.NodeIDs = nodeIDs
		case dom.CommandResolveNode:
			p := params.(*resolveNodeParams)
			res := result.(*resolveNodeReturns)
			res.Object = &remoteObject{
				ObjectID: runtime.RemoteObjectID(fmt.Sprintf("obj-%d", p.NodeID)),
			}
		}
		return nil
	}
}

func TestFindElementsResolvesEveryMatch(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = queryHandler([]cdp.NodeID{11, 12, 13})

	refs, err := d.FindElements(context.Background(), "tab-1", StrategyCSSSelector, "div.item")
	require.NoError(t, err)

	want := []ElementRef{{ObjectID: "obj-11"}, {ObjectID: "obj-12"}, {ObjectID: "obj-13"}}
	assert.Equal(t, want, refs, "refs must preserve query order")

	methods := fake.methods()
	assert.Equal(t, dom.CommandGetDocument, methods[0])
	assert.Equal(t, dom.CommandQuerySelectorAll, methods[1])
	// The three resolve calls run concurrently; order is unspecified.
	resolves := methods[2:]
	sort.Strings(resolves)
	if diff := cmp.Diff([]string{
		dom.CommandResolveNode,
		dom.CommandResolveNode,
		dom.CommandResolveNode,
	}, resolves); diff != "" {
		t.Fatalf("resolve calls mismatch (-want +got):\n%s", diff)
	}

	query := fake.paramsAt(1).(*querySelectorAllParams)
	assert.Equal(t, "div.item", query.Selector)
	assert.Equal(t, cdp.NodeID(1), query.NodeID)
}

func TestFindElementsTagNameQueries(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = queryHandler([]cdp.NodeID{7})

	refs, err := d.FindElements(context.Background(), "tab-1", StrategyTagName, "button")
	require.NoError(t, err)
	assert.Equal(t, []ElementRef{{ObjectID: "obj-7"}}, refs)

	query := fake.paramsAt(1).(*querySelectorAllParams)
	assert.Equal(t, "button", query.Selector)
}

func TestFindElementsNoMatchesIsEmptyNotError(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = queryHandler(nil)

	refs, err := d.FindElements(context.Background(), "tab-1", StrategyCSSSelector, ".missing")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestFindElementsIframeStrategyShortCircuits(t *testing.T) {
	d, fake := newTestDriver(t)

	refs, err := d.FindElements(context.Background(), "tab-1", StrategyIframe, "anything at all")
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
	assert.Zero(t, fake.callCount(), "iframe strategy must not issue protocol calls")
}

func TestFindElementsUnsupportedStrategy(t *testing.T) {
	d, fake := newTestDriver(t)

	_, err := d.FindElements(context.Background(), "tab-1", Strategy("xpath"), "//a")
	assert.ErrorContains(t, err, "unsupported locator strategy")
	assert.Zero(t, fake.callCount())
}

// attributeHandler answers the request-node/get-attributes pair.
func attributeHandler(attrs []string) func(method string, params, result any) error {
	return func(method string, params, result any) error {
		switch method {
		case dom.CommandRequestNode:
			res := result.(*requestNodeReturns)
			res.NodeID = 42
		case dom.CommandGetAttributes:
			p := params.(*getAttributesParams)
			if p.NodeID != 42 {
				return fmt.Errorf("unexpected node id %d", p.NodeID)
			}
			res := result.(*getAttributesReturns)
			res.Attributes = attrs
		}
		return nil
	}
}

func TestGetElementAttribute(t *testing.T) {
	t.Run("present attribute returns the following value", func(t *testing.T) {
		d, fake := newTestDriver(t)
		fake.handle = attributeHandler([]string{"id", "foo", "class", "btn primary"})

		value, ok, err := d.GetElementAttribute(context.Background(), "tab-1", "obj-1", "id")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "foo", value)
	})

	t.Run("missing attribute is unset not an error", func(t *testing.T) {
		d, fake := newTestDriver(t)
		fake.handle = attributeHandler([]string{"id", "foo"})

		value, ok, err := d.GetElementAttribute(context.Background(), "tab-1", "obj-1", "href")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("attribute name is never read as a value", func(t *testing.T) {
		d, fake := newTestDriver(t)
		// "foo" appears as a value; asking for it must not match.
		fake.handle = attributeHandler([]string{"id", "foo"})

		_, ok, err := d.GetElementAttribute(context.Background(), "tab-1", "obj-1", "foo")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestClearElementSetsEmptyValueAttribute(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = attributeHandler(nil)

	require.NoError(t, d.ClearElement(context.Background(), "tab-1", "obj-1"))

	methods := fake.methods()
	require.Equal(t, []string{dom.CommandRequestNode, dom.CommandSetAttributeValue}, methods)

	set := fake.paramsAt(1).(*setAttributeValueParams)
	assert.Equal(t, cdp.NodeID(42), set.NodeID)
	assert.Equal(t, "value", set.Name)
	assert.Empty(t, set.Value)
}

// callFunctionHandler answers Runtime.callFunctionOn with a by-value result.
func callFunctionHandler(t *testing.T, value any) func(method string, params, result any) error {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return func(method string, params, result any) error {
		if method == runtime.CommandCallFunctionOn {
			res := result.(*callFunctionOnReturns)
			res.Result = &remoteObject{Value: raw}
		}
		return nil
	}
}

func TestGetElementTagName(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = callFunctionHandler(t, "input")

	tag, err := d.GetElementTagName(context.Background(), "tab-1", "obj-1")
	require.NoError(t, err)
	assert.Equal(t, "input", tag)

	params := fake.paramsAt(0).(*callFunctionOnParams)
	assert.Contains(t, params.FunctionDeclaration, "tagName")
	assert.True(t, params.ReturnByValue)
	assert.EqualValues(t, "obj-1", params.ObjectID)
}

func TestGetElementRect(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = callFunctionHandler(t, Rect{X: 1, Y: 2, Width: 30, Height: 40})

	rect, err := d.GetElementRect(context.Background(), "tab-1", "obj-1")
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 30, Height: 40}, rect)

	params := fake.paramsAt(0).(*callFunctionOnParams)
	assert.Contains(t, params.FunctionDeclaration, "getBoundingClientRect")
}

func TestCallOnObjectSurfacesScriptExceptions(t *testing.T) {
	d, fake := newTestDriver(t)
	fake.handle = func(method string, params, result any) error {
		res := result.(*callFunctionOnReturns)
		res.ExceptionDetails = &exceptionDetails{
			Text:      "Uncaught",
			Exception: &remoteObject{Description: "TypeError: this.tagName is not a function"},
		}
		return nil
	}

	_, err := d.GetElementTagName(context.Background(), "tab-1", "obj-1")
	assert.ErrorContains(t, err, "TypeError")
}
