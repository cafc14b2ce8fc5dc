package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/source"
	"github.com/matzehuels/jsonscope/pkg/statestore"
)

func TestResolveSourceFile(t *testing.T) {
	src, name, err := resolveSource([]string{"doc.json"}, &sourceOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*source.FileSource); !ok {
		t.Errorf("source type = %T, want *source.FileSource", src)
	}
	if name != "doc.json" {
		t.Errorf("name = %q, want doc.json", name)
	}
}

func TestResolveSourceStdin(t *testing.T) {
	_, name, err := resolveSource([]string{"-"}, &sourceOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if name != "stdin" {
		t.Errorf("name = %q, want stdin", name)
	}
}

func TestResolveSourceURL(t *testing.T) {
	src, name, err := resolveSource(nil, &sourceOpts{url: "https://example.com/data.json"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*source.URLSource); !ok {
		t.Errorf("source type = %T, want *source.URLSource", src)
	}
	if name != "https://example.com/data.json" {
		t.Errorf("name = %q", name)
	}
}

func TestResolveSourceConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
		opts sourceOpts
	}{
		{"url and file", []string{"doc.json"}, sourceOpts{url: "https://example.com"}},
		{"mongo and file", []string{"doc.json"}, sourceOpts{mongoURI: "mongodb://x", mongoDB: "d", mongoColl: "c", mongoDocID: "1"}},
		{"mongo missing parts", nil, sourceOpts{mongoURI: "mongodb://x"}},
		{"nothing", nil, sourceOpts{}},
		{"bad format", []string{"doc.json"}, sourceOpts{format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := resolveSource(tt.args, &tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolveSourceMongo(t *testing.T) {
	opts := sourceOpts{mongoURI: "mongodb://localhost", mongoDB: "db", mongoColl: "docs", mongoDocID: "42"}
	src, name, err := resolveSource(nil, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*source.MongoSource); !ok {
		t.Errorf("source type = %T, want *source.MongoSource", src)
	}
	if name != "db.docs/42" {
		t.Errorf("name = %q, want db.docs/42", name)
	}
}

func TestLoadTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": [1, 2]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	src := source.NewFileSource(path, source.FormatAuto)
	tree, err := loadTree(context.Background(), src, "doc.json")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Kind() != jsontree.KindObject {
		t.Errorf("root kind = %v, want object", tree.Kind())
	}
}

func TestTreeStats(t *testing.T) {
	tree, err := jsontree.ParseText(`{"a": [1, 2], "b": true}`)
	if err != nil {
		t.Fatal(err)
	}

	nodes, containers, depth := treeStats(tree)
	if nodes != 5 {
		t.Errorf("nodes = %d, want 5", nodes)
	}
	if containers != 2 {
		t.Errorf("containers = %d, want 2", containers)
	}
	if depth != 2 {
		t.Errorf("depth = %d, want 2", depth)
	}
}

func TestInitialStateDepth(t *testing.T) {
	tree, err := jsontree.ParseText(`{"a": [1, 2]}`)
	if err != nil {
		t.Fatal(err)
	}

	state, err := initialState(context.Background(), tree, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsCollapsed(".a") {
		t.Error(".a should be collapsed at depth cutoff 1")
	}
	if state.IsCollapsed("") {
		t.Error("root should stay expanded at depth cutoff 1")
	}
}

func TestInitialStateDefault(t *testing.T) {
	tree, err := jsontree.ParseText(`{"a": 1}`)
	if err != nil {
		t.Fatal(err)
	}

	state, err := initialState(context.Background(), tree, "", -1)
	if err != nil {
		t.Fatal(err)
	}
	if state.Len() != 0 {
		t.Errorf("default state has %d collapsed paths, want 0", state.Len())
	}
}

func TestInitialStateSavedStateWinsOverDepth(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tree, err := jsontree.ParseText(`{"a": [1, 2], "b": {"c": 3}}`)
	if err != nil {
		t.Fatal(err)
	}

	rec := statestore.NewRecord("doc", collapse.FromPaths([]string{".b"}))
	store, err := newStateStore()
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Depth 0 would collapse the root; the saved state takes precedence.
	state, err := initialState(context.Background(), tree, rec.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !state.IsCollapsed(".b") {
		t.Error("saved state path not applied")
	}
	if state.IsCollapsed("") || state.IsCollapsed(".a") {
		t.Errorf("depth cutoff applied despite saved state: %v", state.Paths())
	}
}

func TestInitialStateUnknownID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tree, err := jsontree.ParseText(`{}`)
	if err != nil {
		t.Fatal(err)
	}

	_, err = initialState(context.Background(), tree, "missing", -1)
	if errors.GetCode(err) != errors.ErrCodeStateNotFound {
		t.Errorf("error code = %v, want STATE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestDeriveOutput(t *testing.T) {
	tests := []struct {
		input string
		ext   string
		want  string
	}{
		{"doc.json", ".svg", "doc.svg"},
		{"/tmp/data.yaml", ".dot", "data.dot"},
		{"-", ".png", "document.png"},
		{"stdin", ".svg", "document.svg"},
	}
	for _, tt := range tests {
		if got := deriveOutput(tt.input, tt.ext); got != tt.want {
			t.Errorf("deriveOutput(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.want)
		}
	}
}
