package html

import (
	"strings"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

func mustParse(t *testing.T, doc string) jsontree.Node {
	t.Helper()
	n, err := jsontree.ParseText(doc)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestRenderPathsAsDOMIds(t *testing.T) {
	out := Render(mustParse(t, `{"items": [true]}`), collapse.DefaultState())

	for _, want := range []string{
		`id="root"`,
		`id=".items"`,
		`id=".items[0]"`,
		`data-path=".items[0]"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderKindClasses(t *testing.T) {
	out := Render(mustParse(t, `{"s": "x", "n": 1, "b": true, "z": null}`), collapse.DefaultState())

	for _, want := range []string{
		`class="node string"`,
		`class="node number"`,
		`class="node bool"`,
		`class="node null"`,
		`class="node object"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderCollapsedStub(t *testing.T) {
	state := collapse.DefaultState().Collapse(".items")
	out := Render(mustParse(t, `{"items": [1, 2]}`), state)

	if !strings.Contains(out, `<span class="stub">… 2</span>`) {
		t.Errorf("stub missing:\n%s", out)
	}
	if strings.Contains(out, `id=".items[0]"`) {
		t.Errorf("collapsed children rendered:\n%s", out)
	}
}

func TestRenderEscapesContent(t *testing.T) {
	out := Render(mustParse(t, `{"k": "<script>alert(1)</script>"}`), collapse.DefaultState())
	if strings.Contains(out, "<script>") {
		t.Errorf("unescaped content:\n%s", out)
	}
}

func TestDocumentUsesHexPaletteColors(t *testing.T) {
	p := theme.Default()
	p.String = "#a6e3a1"
	out := Document(mustParse(t, `"hi"`), collapse.DefaultState(), Options{Palette: p, Title: "t"})

	if !strings.Contains(out, "color: #a6e3a1") {
		t.Errorf("palette color missing:\n%s", out)
	}
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("not a full document")
	}
}
