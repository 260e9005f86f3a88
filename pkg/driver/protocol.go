// pkg/driver/protocol.go
package driver

import (
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
)

// Wire shapes for the CDP methods this layer issues. Backend nodes appear
// as numeric node ids on the wire and as string object ids above it;
// DOM.requestNode and DOM.resolveNode convert at each crossing.

// remoteObject mirrors Runtime.RemoteObject for the fields this layer reads.
type remoteObject struct {
	Type        string                 `json:"type"`
	Subtype     string                 `json:"subtype,omitempty"`
	ClassName   string                 `json:"className,omitempty"`
	Value       json.RawMessage        `json:"value,omitempty"`
	Description string                 `json:"description,omitempty"`
	ObjectID    runtime.RemoteObjectID `json:"objectId,omitempty"`
}

// exceptionDetails carries a thrown script exception back as an error.
type exceptionDetails struct {
	Text      string        `json:"text"`
	Exception *remoteObject `json:"exception,omitempty"`
}

func (e *exceptionDetails) Error() string {
	if e.Exception != nil && e.Exception.Description != "" {
		return fmt.Sprintf("script exception: %s", e.Exception.Description)
	}
	return fmt.Sprintf("script exception: %s", e.Text)
}

// -- Runtime --

type evaluateParams struct {
	Expression    string `json:"expression"`
	ReturnByValue bool   `json:"returnByValue,omitempty"`
}

type evaluateReturns struct {
	Result           *remoteObject     `json:"result,omitempty"`
	ExceptionDetails *exceptionDetails `json:"exceptionDetails,omitempty"`
}

type callArgument struct {
	Value    json.RawMessage        `json:"value,omitempty"`
	ObjectID runtime.RemoteObjectID `json:"objectId,omitempty"`
}

type callFunctionOnParams struct {
	FunctionDeclaration string                 `json:"functionDeclaration"`
	ObjectID            runtime.RemoteObjectID `json:"objectId,omitempty"`
	Arguments           []callArgument         `json:"arguments,omitempty"`
	ReturnByValue       bool                   `json:"returnByValue,omitempty"`
}

type callFunctionOnReturns struct {
	Result           *remoteObject     `json:"result,omitempty"`
	ExceptionDetails *exceptionDetails `json:"exceptionDetails,omitempty"`
}

type getPropertiesParams struct {
	ObjectID      runtime.RemoteObjectID `json:"objectId"`
	OwnProperties bool                   `json:"ownProperties,omitempty"`
}

type propertyDescriptor struct {
	Name  string        `json:"name"`
	Value *remoteObject `json:"value,omitempty"`
}

type getPropertiesReturns struct {
	Result []propertyDescriptor `json:"result"`
}

// -- DOM --

type getDocumentParams struct {
	Depth int64 `json:"depth,omitempty"`
}

type getDocumentReturns struct {
	Root *cdp.Node `json:"root"`
}

type querySelectorAllParams struct {
	NodeID   cdp.NodeID `json:"nodeId"`
	Selector string     `json:"selector"`
}

type querySelectorAllReturns struct {
	NodeIDs []cdp.NodeID `json:"nodeIds"`
}

type resolveNodeParams struct {
	NodeID cdp.NodeID `json:"nodeId,omitempty"`
}

type resolveNodeReturns struct {
	Object *remoteObject `json:"object"`
}

type requestNodeParams struct {
	ObjectID runtime.RemoteObjectID `json:"objectId"`
}

type requestNodeReturns struct {
	NodeID cdp.NodeID `json:"nodeId"`
}

type getAttributesParams struct {
	NodeID cdp.NodeID `json:"nodeId"`
}

type getAttributesReturns struct {
	// Attributes is a flattened [name1, value1, name2, value2, ...] list.
	Attributes []string `json:"attributes"`
}

type setAttributeValueParams struct {
	NodeID cdp.NodeID `json:"nodeId"`
	Name   string     `json:"name"`
	Value  string     `json:"value"`
}

type focusParams struct {
	ObjectID runtime.RemoteObjectID `json:"objectId,omitempty"`
}

type getContentQuadsParams struct {
	ObjectID runtime.RemoteObjectID `json:"objectId,omitempty"`
}

type getContentQuadsReturns struct {
	Quads []dom.Quad `json:"quads"`
}

// -- Input --

type dispatchMouseEventParams struct {
	Type       input.MouseType   `json:"type"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Button     input.MouseButton `json:"button,omitempty"`
	ClickCount int64             `json:"clickCount,omitempty"`
}

type dispatchKeyEventParams struct {
	Type input.KeyType `json:"type"`
	Text string        `json:"text,omitempty"`
}

// -- Page --

type navigateParams struct {
	URL string `json:"url"`
}

type navigateReturns struct {
	FrameID   string `json:"frameId,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
}

type captureScreenshotParams struct {
	Format string `json:"format,omitempty"`
}

// captureScreenshotReturns keeps the image as the base64 string it arrives
// as; decoding it here would only force callers to re-encode.
type captureScreenshotReturns struct {
	Data string `json:"data"`
}

// -- DOMSnapshot --

type captureSnapshotParams struct {
	ComputedStyles []string `json:"computedStyles"`
}
