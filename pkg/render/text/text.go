// Package text renders an annotated tree as styled terminal output.
package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

// Options configures text rendering.
type Options struct {
	// Palette supplies the per-kind colors. The zero value falls back to
	// theme.Default.
	Palette theme.Palette

	// Highlight is the path of the node to emphasize (e.g., the current
	// selection). Empty means no highlight.
	Highlight string

	// Indent is the indentation per nesting level. Defaults to two spaces.
	Indent string
}

type renderer struct {
	state     collapse.State
	highlight string
	indent    string

	styleString lipgloss.Style
	styleNumber lipgloss.Style
	styleBool   lipgloss.Style
	styleNull   lipgloss.Style
	styleHot    lipgloss.Style
	styleDim    lipgloss.Style
	styleKey    lipgloss.Style
}

// Render produces the terminal representation of tree under the given
// collapse state. Collapsed containers render as a single stub line with
// their child count; object fields appear in sorted key order.
func Render(tree jsontree.Node, state collapse.State, opts Options) string {
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Default()
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	r := &renderer{
		state:       state,
		highlight:   opts.Highlight,
		indent:      opts.Indent,
		styleString: lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Palette.String)),
		styleNumber: lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Palette.Number)),
		styleBool:   lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Palette.Bool)),
		styleNull:   lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Palette.Null)),
		styleHot:    lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Palette.Highlight)).Bold(true),
		styleDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		styleKey:    lipgloss.NewStyle(),
	}

	var b strings.Builder
	r.node(&b, tree, "", 0)
	return b.String()
}

func (r *renderer) node(b *strings.Builder, n jsontree.Node, label string, depth int) {
	prefix := strings.Repeat(r.indent, depth)

	if !n.IsContainer() {
		line := prefix + r.label(n, label) + r.scalar(n)
		b.WriteString(line)
		b.WriteByte('\n')
		return
	}

	opener, closer, unit := "{", "}", "fields"
	if n.Kind() == jsontree.KindList {
		opener, closer, unit = "[", "]", "items"
	}

	if r.state.IsCollapsed(n.Path) {
		stub := fmt.Sprintf("%s…%s %d %s", opener, closer, n.Len(), unit)
		b.WriteString(prefix + r.label(n, label) + r.styleDim.Render(stub))
		b.WriteByte('\n')
		return
	}

	b.WriteString(prefix + r.label(n, label) + opener)
	b.WriteByte('\n')

	switch v := n.Value.(type) {
	case jsontree.List:
		for _, child := range v {
			r.node(b, child, "", depth+1)
		}
	case jsontree.Object:
		for _, k := range n.Keys() {
			r.node(b, v[k], k+": ", depth+1)
		}
	}

	b.WriteString(prefix + closer)
	b.WriteByte('\n')
}

// label styles the field key, applying the highlight color when the node is
// the highlighted one.
func (r *renderer) label(n jsontree.Node, label string) string {
	if label == "" {
		return ""
	}
	if n.Path == r.highlight {
		return r.styleHot.Render(label)
	}
	return r.styleKey.Render(label)
}

func (r *renderer) scalar(n jsontree.Node) string {
	text := FormatScalar(n.Value)
	if n.Path == r.highlight {
		return r.styleHot.Render(text)
	}
	switch n.Kind() {
	case jsontree.KindString:
		return r.styleString.Render(text)
	case jsontree.KindNumber:
		return r.styleNumber.Render(text)
	case jsontree.KindBool:
		return r.styleBool.Render(text)
	case jsontree.KindNull:
		return r.styleNull.Render(text)
	}
	return text
}

// FormatScalar returns the literal text for a scalar value: quoted strings,
// shortest-form numbers (integral floats print without a decimal point),
// true/false, and null. Containers yield an empty string.
func FormatScalar(v jsontree.Value) string {
	switch t := v.(type) {
	case jsontree.String:
		return strconv.Quote(string(t))
	case jsontree.Number:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case jsontree.Bool:
		return strconv.FormatBool(bool(t))
	case jsontree.Null:
		return "null"
	}
	return ""
}
