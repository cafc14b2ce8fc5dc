package collapse

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/jsontree"
)

func mustParse(t *testing.T, doc string) jsontree.Node {
	t.Helper()
	n, err := jsontree.ParseText(doc)
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return n
}

func TestDefaultStateExpanded(t *testing.T) {
	s := DefaultState()
	for _, p := range []string{"", ".a", "[0]", ".items[2].deep", "bogus"} {
		if s.IsCollapsed(p) {
			t.Errorf("IsCollapsed(%q) = true on default state", p)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestCollapseExpand(t *testing.T) {
	s := DefaultState().Collapse(".a")
	if !s.IsCollapsed(".a") {
		t.Error("path not collapsed after Collapse")
	}

	s2 := s.Expand(".a")
	if s2.IsCollapsed(".a") {
		t.Error("path still collapsed after Expand")
	}
	// Original state untouched.
	if !s.IsCollapsed(".a") {
		t.Error("Expand mutated its input")
	}
}

func TestCollapseThenExpandIsIdentity(t *testing.T) {
	base := FromPaths([]string{".x", "[3]"})
	got := base.Collapse(".new").Expand(".new")
	if !got.Equal(base) {
		t.Errorf("collapse+expand changed state: %v vs %v", got.Paths(), base.Paths())
	}
}

func TestExpandAllIsTotalReset(t *testing.T) {
	s := FromPaths([]string{".a", ".b", "stale.path"})
	if got := s.ExpandAll(); got.Len() != 0 {
		t.Errorf("ExpandAll left %d paths", got.Len())
	}
}

func TestToggle(t *testing.T) {
	s := DefaultState().Toggle(".a")
	if !s.IsCollapsed(".a") {
		t.Error("toggle did not collapse")
	}
	if s.Toggle(".a").IsCollapsed(".a") {
		t.Error("second toggle did not expand")
	}
}

func TestStalePathsAreInert(t *testing.T) {
	s := FromPaths([]string{".does.not.exist[9]"})
	if !s.IsCollapsed(".does.not.exist[9]") {
		t.Error("stale path lost")
	}
	// Stale entries survive unrelated operations.
	s = s.Collapse(".a").Expand(".a")
	if !s.IsCollapsed(".does.not.exist[9]") {
		t.Error("stale path dropped by unrelated ops")
	}
}

func TestBelowDepth(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		maxDepth int
		want     []string
	}{
		{"scalar root never collapses", `42`, 0, nil},
		{"container root at depth 0", `{"a": 1}`, 0, []string{""}},
		{"depth 1 keeps root open", `{"a": 1}`, 1, nil},
		{"nested containers", `{"a": {"b": [1]}}`, 1, []string{".a", ".a.b"}},
		{"collapse everything", `{"a": {"b": [1]}}`, 0, []string{"", ".a", ".a.b"}},
		{"list elements", `[[1], 2, {"x": 3}]`, 1, []string{"[0]", "[2]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BelowDepth(mustParse(t, tt.doc), tt.maxDepth)
			want := FromPaths(tt.want)
			if !got.Equal(want) {
				t.Errorf("BelowDepth(%d) = %v, want %v", tt.maxDepth, got.Paths(), tt.want)
			}
		})
	}
}

func TestBelowDepthBeyondTreeIsExpanded(t *testing.T) {
	tree := mustParse(t, `{"a": {"b": [1, {"c": 2}]}}`)
	depth := jsontree.Depth(tree)
	if got := BelowDepth(tree, depth); got.Len() != 0 {
		t.Errorf("BelowDepth(%d) collapsed %v, want nothing", depth, got.Paths())
	}
}

func TestPersistRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
	}{
		{"empty", nil},
		{"single", []string{""}},
		{"several", []string{"", "[0]", "[0].name", ".deep[12].x"}},
		{"stale paths", []string{".ghost", "[99]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromPaths(tt.paths)
			got := FromPaths(s.Paths())
			if !got.Equal(s) {
				t.Errorf("round trip: %v vs %v", got.Paths(), s.Paths())
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := FromPaths([]string{"[1]", ".name", ""})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var got State
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s) {
		t.Errorf("round trip: %v vs %v", got.Paths(), s.Paths())
	}
}

func TestJSONEmptyStateIsArray(t *testing.T) {
	data, err := json.Marshal(DefaultState())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty state = %s, want []", data)
	}
}

func TestJSONAcceptsAnyStringArray(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`["nonexistent", "[42].nope"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestPathsSorted(t *testing.T) {
	s := FromPaths([]string{".z", ".a", "[0]"})
	got := s.Paths()
	want := []string{".a", ".z", "[0]"}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
