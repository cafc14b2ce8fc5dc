package text

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
)

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

// plain renders and strips ANSI sequences so assertions hold regardless of
// the terminal profile tests run under.
func plain(t *testing.T, doc string, state collapse.State) string {
	t.Helper()
	tree, err := jsontree.ParseText(doc)
	if err != nil {
		t.Fatal(err)
	}
	return ansiRe.ReplaceAllString(Render(tree, state, Options{}), "")
}

func TestRenderScalarRoot(t *testing.T) {
	out := plain(t, `42`, collapse.DefaultState())
	if strings.TrimSpace(out) != "42" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderExpandedObject(t *testing.T) {
	out := plain(t, `{"age": 42, "name": "Arnold"}`, collapse.DefaultState())

	for _, want := range []string{"age: 42", `name: "Arnold"`, "{", "}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Sorted key order.
	if strings.Index(out, "age") > strings.Index(out, "name") {
		t.Errorf("keys not sorted:\n%s", out)
	}
}

func TestRenderCollapsedContainer(t *testing.T) {
	state := collapse.DefaultState().Collapse(".tags")
	out := plain(t, `{"tags": [1, 2, 3]}`, state)

	if !strings.Contains(out, "[…] 3 items") {
		t.Errorf("collapsed stub missing:\n%s", out)
	}
	if strings.Contains(out, "[0]") || strings.Contains(out, " 1\n") {
		t.Errorf("collapsed children rendered:\n%s", out)
	}
}

func TestRenderCollapsedRoot(t *testing.T) {
	state := collapse.DefaultState().Collapse("")
	out := plain(t, `{"a": 1, "b": 2}`, state)

	if !strings.Contains(out, "{…} 2 fields") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "a: 1") {
		t.Errorf("children rendered under collapsed root:\n%s", out)
	}
}

func TestRenderNestedIndentation(t *testing.T) {
	out := plain(t, `{"a": {"b": 1}}`, collapse.DefaultState())
	if !strings.Contains(out, "\n    b: 1\n") {
		t.Errorf("nested field not indented twice:\n%q", out)
	}
}

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name string
		v    jsontree.Value
		want string
	}{
		{"string", jsontree.String("hi"), `"hi"`},
		{"integral number", jsontree.Number(42), "42"},
		{"fractional number", jsontree.Number(0.5), "0.5"},
		{"bool", jsontree.Bool(true), "true"},
		{"null", jsontree.Null{}, "null"},
		{"container", jsontree.List{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatScalar(tt.v); got != tt.want {
				t.Errorf("FormatScalar = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHighlight(t *testing.T) {
	// Force a color profile so styles emit escape codes regardless of the
	// environment tests run under.
	lipgloss.SetColorProfile(termenv.ANSI256)

	tree, err := jsontree.ParseText(`{"age": 42, "name": "Arnold"}`)
	if err != nil {
		t.Fatal(err)
	}

	base := Render(tree, collapse.DefaultState(), Options{})
	hot := Render(tree, collapse.DefaultState(), Options{Highlight: ".name"})

	if hot == base {
		t.Error("highlight produced identical output")
	}
	if ansiRe.ReplaceAllString(hot, "") != ansiRe.ReplaceAllString(base, "") {
		t.Errorf("highlight changed the text content:\n%s", hot)
	}

	// A highlight path missing from the tree is inert.
	if got := Render(tree, collapse.DefaultState(), Options{Highlight: ".ghost"}); got != base {
		t.Error("unknown highlight path altered output")
	}
}

func TestRenderStaleStatePathsInert(t *testing.T) {
	state := collapse.FromPaths([]string{".ghost[3]"})
	out := plain(t, `{"a": 1}`, state)
	if !strings.Contains(out, "a: 1") {
		t.Errorf("stale path affected render:\n%s", out)
	}
}
