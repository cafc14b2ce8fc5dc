// Package io serializes annotated trees to JSON and back.
//
// The wire format keeps the path and kind of every node explicit, so a dump
// produced by `jsonscope parse` can be rendered or served later without
// re-deriving paths:
//
//	{"path": "", "kind": "object", "fields": {
//	    "age": {"path": ".age", "kind": "number", "value": 42}}}
//
// [WriteJSON] and [ReadJSON] round-trip losslessly.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jsonscope/pkg/jsontree"
)

// node is the wire representation of a jsontree.Node.
type node struct {
	Path   string          `json:"path"`
	Kind   string          `json:"kind"`
	Value  any             `json:"value,omitempty"`  // scalars only
	Items  []node          `json:"items,omitempty"`  // lists only
	Fields map[string]node `json:"fields,omitempty"` // objects only
}

func toWire(n jsontree.Node) node {
	out := node{Path: n.Path, Kind: n.Kind().String()}
	switch v := n.Value.(type) {
	case jsontree.String:
		out.Value = string(v)
	case jsontree.Number:
		out.Value = float64(v)
	case jsontree.Bool:
		out.Value = bool(v)
	case jsontree.Null:
		// kind alone carries the information
	case jsontree.List:
		out.Items = make([]node, len(v))
		for i, child := range v {
			out.Items[i] = toWire(child)
		}
	case jsontree.Object:
		out.Fields = make(map[string]node, len(v))
		for k, child := range v {
			out.Fields[k] = toWire(child)
		}
	}
	return out
}

// WriteJSON encodes an annotated tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(n jsontree.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(n)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes an annotated tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(n jsontree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(n, f)
}
