package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
)

// ReadJSON decodes an annotated tree previously written by [WriteJSON].
// Paths are taken from the file as-is; kind tags are validated and a
// mismatch between kind and payload is an error.
func ReadJSON(r io.Reader) (jsontree.Node, error) {
	var wire node
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return jsontree.Node{}, fmt.Errorf("decode: %w", err)
	}
	return fromWire(wire)
}

// ImportJSON reads an annotated tree from a JSON file at path.
func ImportJSON(path string) (jsontree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return jsontree.Node{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func fromWire(w node) (jsontree.Node, error) {
	out := jsontree.Node{Path: w.Path}

	switch w.Kind {
	case "string":
		s, ok := w.Value.(string)
		if !ok {
			return jsontree.Node{}, fmt.Errorf("node %q: string kind with %T value", w.Path, w.Value)
		}
		out.Value = jsontree.String(s)
	case "number":
		f, ok := w.Value.(float64)
		if !ok {
			return jsontree.Node{}, fmt.Errorf("node %q: number kind with %T value", w.Path, w.Value)
		}
		out.Value = jsontree.Number(f)
	case "bool":
		b, ok := w.Value.(bool)
		if !ok {
			return jsontree.Node{}, fmt.Errorf("node %q: bool kind with %T value", w.Path, w.Value)
		}
		out.Value = jsontree.Bool(b)
	case "null":
		out.Value = jsontree.Null{}
	case "list":
		list := make(jsontree.List, len(w.Items))
		for i, item := range w.Items {
			child, err := fromWire(item)
			if err != nil {
				return jsontree.Node{}, err
			}
			list[i] = child
		}
		out.Value = list
	case "object":
		obj := make(jsontree.Object, len(w.Fields))
		for k, field := range w.Fields {
			child, err := fromWire(field)
			if err != nil {
				return jsontree.Node{}, err
			}
			obj[k] = child
		}
		out.Value = obj
	default:
		return jsontree.Node{}, errors.New(errors.ErrCodeUnsupported, "node %q: unknown kind %q", w.Path, w.Kind)
	}
	return out, nil
}
