package jsontree

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseError is the single error kind produced by this package. It indicates
// input that cannot be decoded as one of the supported JSON shapes. No
// partially constructed tree is ever returned alongside it.
type ParseError struct {
	msg   string
	cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("parse: %s: %v", e.msg, e.cause)
	}
	return "parse: " + e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.cause
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Parse converts a generic decoded JSON value (as produced by encoding/json
// or a compatible decoder) into an annotated tree.
//
// Decoding tries string, number, bool, list, object, then null, in that
// order. Any other value yields a *ParseError. A second pass assigns paths
// top-down, rebuilding containers with annotated children; the input is
// never mutated.
func Parse(v any) (Node, error) {
	val, err := decode(v)
	if err != nil {
		return Node{}, err
	}
	return annotate(val, ""), nil
}

// ParseBytes unmarshals raw JSON text and delegates to [Parse].
// Malformed JSON is reported as a *ParseError.
func ParseBytes(b []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Node{}, &ParseError{msg: "invalid JSON text", cause: err}
	}
	return Parse(v)
}

// ParseText is the string-input variant of [ParseBytes].
func ParseText(s string) (Node, error) {
	return ParseBytes([]byte(s))
}

// decode builds an unannotated value tree from a generic decoded input.
// Children are wrapped in Nodes with empty paths; annotate fills them in.
func decode(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(t), nil
	case int:
		return Number(t), nil
	case int32:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case uint64:
		return Number(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, &ParseError{msg: fmt.Sprintf("invalid number %q", t.String()), cause: err}
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case []any:
		list := make(List, len(t))
		for i, child := range t {
			cv, err := decode(child)
			if err != nil {
				return nil, err
			}
			list[i] = Node{Value: cv}
		}
		return list, nil
	case map[string]any:
		obj := make(Object, len(t))
		for k, child := range t {
			cv, err := decode(child)
			if err != nil {
				return nil, err
			}
			obj[k] = Node{Value: cv}
		}
		return obj, nil
	case nil:
		return Null{}, nil
	}
	return nil, parseErrorf("unsupported value of type %T", v)
}

// annotate assigns the path to v and recursively to its children,
// producing a fresh tree. List children get an index accessor, object
// children a field accessor. Path values depend only on the child's
// position, never on map iteration order.
func annotate(v Value, path string) Node {
	switch t := v.(type) {
	case List:
		out := make(List, len(t))
		for i, child := range t {
			out[i] = annotate(child.Value, path+"["+strconv.Itoa(i)+"]")
		}
		return Node{Value: out, Path: path}
	case Object:
		out := make(Object, len(t))
		for k, child := range t {
			out[k] = annotate(child.Value, path+"."+k)
		}
		return Node{Value: out, Path: path}
	default:
		return Node{Value: v, Path: path}
	}
}
