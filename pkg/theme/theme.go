// Package theme defines the color palette used by the renderers.
//
// A palette has five named slots, one per scalar kind plus a highlight color
// for the selectable/selected node. Colors are lipgloss-compatible values:
// ANSI 256 codes ("36") or hex strings ("#7aa2f7"). Palettes load from a
// TOML file, with any omitted slot falling back to the default.
//
// Example theme file (~/.config/jsonscope/theme.toml):
//
//	string    = "35"
//	number    = "36"
//	bool      = "220"
//	null      = "240"
//	highlight = "212"
package theme

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// Palette holds the five color slots consumed by the renderers.
type Palette struct {
	String    string `toml:"string"`    // string literals
	Number    string `toml:"number"`    // numeric literals
	Bool      string `toml:"bool"`      // true/false
	Null      string `toml:"null"`      // null
	Highlight string `toml:"highlight"` // selected/selectable node
}

// Default returns the built-in palette. The values are ANSI 256 codes chosen
// to stay readable on both dark and light terminals.
func Default() Palette {
	return Palette{
		String:    "35",  // green
		Number:    "36",  // teal
		Bool:      "220", // amber
		Null:      "240", // dim gray
		Highlight: "212", // pink
	}
}

// Load reads a palette from a TOML file. Slots omitted in the file keep
// their default values; unknown keys are rejected so typos surface early.
func Load(path string) (Palette, error) {
	p := Default()
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file %s", path)
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidTheme, "theme file %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}

// LoadOrDefault reads a palette from path, falling back to the default
// palette if the file does not exist. Other errors are still returned.
func LoadOrDefault(path string) (Palette, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
