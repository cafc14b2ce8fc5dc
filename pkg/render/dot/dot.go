// Package dot exports an annotated tree as a Graphviz diagram.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/render/text"
)

// Options configures DOT generation.
type Options struct {
	// MaxLabel truncates scalar value labels longer than this many runes.
	// Zero means the default of 40.
	MaxLabel int
}

// ToDOT converts a tree to Graphviz DOT format. Every node becomes a box
// labeled with its accessor and, for scalars, its value; edges run from each
// container to its children. Node identifiers are the tree paths (the root
// is "$" since DOT requires a non-empty id).
func ToDOT(tree jsontree.Node, opts Options) string {
	maxLabel := opts.MaxLabel
	if maxLabel <= 0 {
		maxLabel = 40
	}

	var buf bytes.Buffer
	buf.WriteString("digraph J {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	jsontree.Walk(tree, func(n jsontree.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.Path), strings.Join(attrs(n, maxLabel), ", "))
		return true
	})

	buf.WriteString("\n")
	jsontree.Walk(tree, func(n jsontree.Node, _ int) bool {
		switch v := n.Value.(type) {
		case jsontree.List:
			for _, child := range v {
				fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.Path), nodeID(child.Path))
			}
		case jsontree.Object:
			for _, k := range n.Keys() {
				fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.Path), nodeID(v[k].Path))
			}
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

func attrs(n jsontree.Node, maxLabel int) []string {
	label := accessor(n.Path)
	if n.IsContainer() {
		label += fmt.Sprintf(" (%s, %d)", n.Kind(), n.Len())
		return []string{
			fmt.Sprintf("label=%q", label),
			"style=\"rounded,filled\"",
			"fillcolor=lightgrey",
		}
	}

	value := text.FormatScalar(n.Value)
	if runes := []rune(value); len(runes) > maxLabel {
		value = string(runes[:maxLabel]) + "…"
	}
	if label == "$" {
		return []string{fmt.Sprintf("label=%q", value)}
	}
	return []string{fmt.Sprintf("label=%q", label+": "+value)}
}

// accessor returns the last path step: the field name or index that reaches
// the node from its parent, or "$" for the root.
func accessor(path string) string {
	if path == "" {
		return "$"
	}
	dot := strings.LastIndex(path, ".")
	bracket := strings.LastIndex(path, "[")
	switch {
	case bracket > dot:
		return path[bracket:]
	case dot >= 0:
		return path[dot+1:]
	}
	return path
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
