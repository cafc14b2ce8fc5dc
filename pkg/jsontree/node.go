package jsontree

import (
	"slices"
)

// Node is a single position in the annotated tree. Nodes are immutable once
// constructed; containers own their children exclusively (JSON is acyclic,
// so plain value ownership suffices).
type Node struct {
	Value Value  // tagged JSON value
	Path  string // position identifier, "" for the root
}

// Kind returns the kind of the node's value.
func (n Node) Kind() Kind {
	return n.Value.Kind()
}

// IsContainer reports whether the node is a list or object.
func (n Node) IsContainer() bool {
	return n.Value != nil && n.Kind().IsContainer()
}

// Len returns the number of direct children for containers and 0 for
// scalar nodes.
func (n Node) Len() int {
	switch v := n.Value.(type) {
	case List:
		return len(v)
	case Object:
		return len(v)
	}
	return 0
}

// Keys returns the field names of an object node in sorted order.
// It returns nil for non-object nodes. Sorting exists only to give callers
// a deterministic traversal; field order has no semantic meaning.
func (n Node) Keys() []string {
	obj, ok := n.Value.(Object)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
