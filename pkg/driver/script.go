// pkg/driver/script.go
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"

	"github.com/xkilldash9x/cdpdriver/pkg/session"
)

// scriptValueKind discriminates how an argument crosses the protocol
// boundary: copied by value, passed as a remote object handle, or degraded
// to undefined.
type scriptValueKind int

const (
	valueUndefined scriptValueKind = iota
	valuePrimitive
	valueElement
)

// scriptValue is the tagged form of one script argument.
type scriptValue struct {
	kind     scriptValueKind
	raw      json.RawMessage
	objectID runtime.RemoteObjectID
}

// classifyArg maps a caller-supplied argument onto the wire variants.
// Strings, booleans and numbers pass by value; element references pass by
// object id; everything else becomes undefined.
func classifyArg(arg any) scriptValue {
	switch v := arg.(type) {
	case ElementRef:
		return scriptValue{kind: valueElement, objectID: v.ObjectID}
	case *ElementRef:
		if v == nil {
			return scriptValue{kind: valueUndefined}
		}
		return scriptValue{kind: valueElement, objectID: v.ObjectID}
	case string, bool, int, int32, int64, float32, float64, json.Number:
		raw, err := json.Marshal(v)
		if err != nil {
			return scriptValue{kind: valueUndefined}
		}
		return scriptValue{kind: valuePrimitive, raw: raw}
	case map[string]any:
		if id, ok := v[ElementKey].(string); ok && id != "" {
			return scriptValue{kind: valueElement, objectID: runtime.RemoteObjectID(id)}
		}
		return scriptValue{kind: valueUndefined}
	default:
		return scriptValue{kind: valueUndefined}
	}
}

func (v scriptValue) callArgument() callArgument {
	switch v.kind {
	case valuePrimitive:
		return callArgument{Value: v.raw}
	case valueElement:
		return callArgument{ObjectID: v.objectID}
	default:
		// An empty argument object is delivered as undefined.
		return callArgument{}
	}
}

func marshalArgs(args []any) []callArgument {
	if len(args) == 0 {
		return nil
	}
	out := make([]callArgument, 0, len(args))
	for _, arg := range args {
		out = append(out, classifyArg(arg).callArgument())
	}
	return out
}

// ExecuteScript wraps the script text in a function and invokes it against
// the page's global object. Node lists come back as element references per
// indexed own property, the root HTML element as a single reference, and
// anything else by copy.
func (d *Driver) ExecuteScript(ctx context.Context, page target.ID, script string, args []any) (any, error) {
	s, err := d.session(page)
	if err != nil {
		return nil, err
	}

	global, err := d.evaluate(ctx, s, "window", false)
	if err != nil {
		return nil, err
	}
	if global == nil || global.ObjectID == "" {
		return nil, fmt.Errorf("global object did not resolve to a remote object")
	}

	var res callFunctionOnReturns
	params := &callFunctionOnParams{
		FunctionDeclaration: "function() { " + script + " }",
		ObjectID:            global.ObjectID,
		Arguments:           marshalArgs(args),
	}
	if err := s.Send(ctx, runtime.CommandCallFunctionOn, params, &res); err != nil {
		return nil, err
	}
	if res.ExceptionDetails != nil {
		return nil, res.ExceptionDetails
	}
	return d.unwrapScriptResult(ctx, s, res.Result)
}

func (d *Driver) unwrapScriptResult(ctx context.Context, s session.Sender, obj *remoteObject) (any, error) {
	switch {
	case obj == nil:
		return nil, nil

	case obj.Subtype == "nodelist":
		var props getPropertiesReturns
		params := &getPropertiesParams{ObjectID: obj.ObjectID, OwnProperties: true}
		if err := s.Send(ctx, runtime.CommandGetProperties, params, &props); err != nil {
			return nil, err
		}
		refs := []ElementRef{}
		for _, p := range props.Result {
			if _, err := strconv.Atoi(p.Name); err != nil {
				// Own properties include length and friends; only the
				// indexed entries are nodes.
				continue
			}
			if p.Value != nil && p.Value.ObjectID != "" {
				refs = append(refs, ElementRef{ObjectID: p.Value.ObjectID})
			}
		}
		return refs, nil

	case obj.ClassName == "HTMLHtmlElement":
		return ElementRef{ObjectID: obj.ObjectID}, nil

	case obj.ObjectID != "":
		// The result lives in the remote object graph; fetch a copy.
		var value json.RawMessage
		if err := d.callOnObject(ctx, s, obj.ObjectID, "function() { return this; }", &value); err != nil {
			return nil, err
		}
		return value, nil

	default:
		return obj.Value, nil
	}
}
