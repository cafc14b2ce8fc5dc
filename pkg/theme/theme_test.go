package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultHasAllSlots(t *testing.T) {
	p := Default()
	for name, v := range map[string]string{
		"String": p.String, "Number": p.Number, "Bool": p.Bool,
		"Null": p.Null, "Highlight": p.Highlight,
	} {
		if v == "" {
			t.Errorf("default palette slot %s is empty", name)
		}
	}
}

func TestLoadOverridesSlots(t *testing.T) {
	path := writeTheme(t, "string = \"#a6e3a1\"\nhighlight = \"99\"\n")

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.String != "#a6e3a1" {
		t.Errorf("String = %q", p.String)
	}
	if p.Highlight != "99" {
		t.Errorf("Highlight = %q", p.Highlight)
	}
	// Untouched slot keeps the default.
	if p.Number != Default().Number {
		t.Errorf("Number = %q, want default %q", p.Number, Default().Number)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeTheme(t, "strnig = \"35\"\n")

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("error = %v, want INVALID_THEME", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	p, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault error: %v", err)
	}
	if p != Default() {
		t.Error("missing file should yield the default palette")
	}
}
