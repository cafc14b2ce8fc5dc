// Package collapse tracks which tree nodes are hidden from view.
//
// A State is a set of path strings: a path that is present is collapsed,
// everything else is expanded. The zero value (and [DefaultState]) is fully
// expanded. All operations are pure: they return a new State and never
// mutate the receiver, so a State can be shared freely between renders.
//
// States are independent of any particular tree. Paths that do not exist in
// the tree being rendered are simply inert; they are never validated or
// rejected, which makes persisted states safe to load against a different
// document.
package collapse

import (
	"slices"

	"github.com/matzehuels/jsonscope/pkg/jsontree"
)

// State is an immutable set of collapsed paths.
type State struct {
	paths map[string]struct{}
}

// DefaultState returns the fully expanded state.
func DefaultState() State {
	return State{}
}

// FromPaths builds a state from a list of path strings. Duplicates and
// ordering are irrelevant; the input slice is not retained.
func FromPaths(paths []string) State {
	if len(paths) == 0 {
		return State{}
	}
	m := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		m[p] = struct{}{}
	}
	return State{paths: m}
}

// IsCollapsed reports whether path is in the collapsed set.
func (s State) IsCollapsed(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Collapse returns a state with path added to the collapsed set.
func (s State) Collapse(path string) State {
	if s.IsCollapsed(path) {
		return s
	}
	m := make(map[string]struct{}, len(s.paths)+1)
	for p := range s.paths {
		m[p] = struct{}{}
	}
	m[path] = struct{}{}
	return State{paths: m}
}

// Expand returns a state with path removed from the collapsed set.
func (s State) Expand(path string) State {
	if !s.IsCollapsed(path) {
		return s
	}
	if len(s.paths) == 1 {
		return State{}
	}
	m := make(map[string]struct{}, len(s.paths)-1)
	for p := range s.paths {
		if p != path {
			m[p] = struct{}{}
		}
	}
	return State{paths: m}
}

// Toggle flips the collapsed flag for path.
func (s State) Toggle(path string) State {
	if s.IsCollapsed(path) {
		return s.Expand(path)
	}
	return s.Collapse(path)
}

// ExpandAll returns the fully expanded state, discarding every collapsed
// path. This is a total reset, not a per-path expand.
func (s State) ExpandAll() State {
	return State{}
}

// Len returns the number of collapsed paths.
func (s State) Len() int {
	return len(s.paths)
}

// Equal reports whether two states collapse exactly the same paths.
func (s State) Equal(o State) bool {
	if len(s.paths) != len(o.paths) {
		return false
	}
	for p := range s.paths {
		if _, ok := o.paths[p]; !ok {
			return false
		}
	}
	return true
}

// Paths returns the collapsed paths in sorted order. The result is a copy;
// modifying it does not affect the state.
func (s State) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// BelowDepth recomputes a state from scratch that collapses every container
// node at depth maxDepth or deeper. Any previously collapsed paths are
// discarded: the walk starts from the fully expanded state.
//
// The root sits at depth 0, so maxDepth 0 collapses the root itself when it
// is a list or object. Scalar nodes never collapse. Children of a collapsed
// container are still visited, so deeper containers are collapsed as well.
func BelowDepth(tree jsontree.Node, maxDepth int) State {
	paths := map[string]struct{}{}
	jsontree.Walk(tree, func(n jsontree.Node, depth int) bool {
		if n.IsContainer() && depth >= maxDepth {
			paths[n.Path] = struct{}{}
		}
		return true
	})
	if len(paths) == 0 {
		return State{}
	}
	return State{paths: paths}
}
