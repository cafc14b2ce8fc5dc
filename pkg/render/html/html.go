// Package html renders an annotated tree as nested HTML lists.
//
// Node paths double as DOM ids, so client-side code can address any node
// directly (the root gets the id "root" since an empty id is not valid
// HTML). Collapsed containers render a stub instead of their children; the
// server re-renders the whole document after every state change.
package html

import (
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/render/text"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

// Options configures HTML rendering.
type Options struct {
	// Palette maps onto the CSS variables emitted by [Document].
	Palette theme.Palette

	// Title is the page title used by [Document].
	Title string
}

// Render produces the tree fragment: a <ul> with one <li> per visible node.
// Every node element carries its path in both the id and data-path
// attributes and a class naming its kind.
func Render(tree jsontree.Node, state collapse.State) string {
	var b strings.Builder
	b.WriteString(`<ul class="jsonscope">` + "\n")
	node(&b, tree, "", state)
	b.WriteString("</ul>\n")
	return b.String()
}

func node(b *strings.Builder, n jsontree.Node, label string, state collapse.State) {
	id := n.Path
	if id == "" {
		id = "root"
	}
	fmt.Fprintf(b, `<li id=%q data-path=%q class="node %s">`, id, n.Path, n.Kind())

	if label != "" {
		fmt.Fprintf(b, `<span class="key">%s</span>: `, html.EscapeString(label))
	}

	switch v := n.Value.(type) {
	case jsontree.List, jsontree.Object:
		if state.IsCollapsed(n.Path) {
			fmt.Fprintf(b, `<span class="stub">… %d</span>`, n.Len())
			break
		}
		b.WriteString("<ul>\n")
		if list, ok := v.(jsontree.List); ok {
			for _, child := range list {
				node(b, child, "", state)
			}
		} else {
			obj := v.(jsontree.Object)
			for _, k := range n.Keys() {
				node(b, obj[k], k, state)
			}
		}
		b.WriteString("</ul>")
	default:
		fmt.Fprintf(b, `<span class="value">%s</span>`, html.EscapeString(text.FormatScalar(n.Value)))
	}

	b.WriteString("</li>\n")
}

// Document wraps the rendered fragment in a complete HTML page with a style
// block derived from the palette. ANSI 256 palette values fall back to the
// page default color; hex values are used directly.
func Document(tree jsontree.Node, state collapse.State, opts Options) string {
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Default()
	}
	title := opts.Title
	if title == "" {
		title = "jsonscope"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: monospace; }\n")
	b.WriteString("ul.jsonscope, ul.jsonscope ul { list-style: none; padding-left: 1.5em; }\n")
	fmt.Fprintf(&b, ".string > .value { color: %s; }\n", cssColor(opts.Palette.String))
	fmt.Fprintf(&b, ".number > .value { color: %s; }\n", cssColor(opts.Palette.Number))
	fmt.Fprintf(&b, ".bool > .value { color: %s; }\n", cssColor(opts.Palette.Bool))
	fmt.Fprintf(&b, ".null > .value { color: %s; }\n", cssColor(opts.Palette.Null))
	fmt.Fprintf(&b, ".node.selected { background: %s; }\n", cssColor(opts.Palette.Highlight))
	b.WriteString(".stub { color: #888; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(Render(tree, state))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// cssColor converts a palette value into a usable CSS color. Hex values
// pass through; bare ANSI 256 codes have no CSS equivalent, so they fall
// back to inherit.
func cssColor(v string) string {
	if strings.HasPrefix(v, "#") {
		return v
	}
	return "inherit"
}
