// Package source loads raw documents from files, stdin, URLs, and MongoDB.
//
// A Source produces the untyped value that pkg/jsontree turns into an
// annotated tree. Sources deal only in transport and format; they never
// inspect or restructure the document.
package source

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// Format identifies the on-disk encoding of a document.
type Format string

const (
	FormatAuto Format = ""     // detect from file extension, default JSON
	FormatJSON Format = "json" // JSON
	FormatYAML Format = "yaml" // YAML
)

// ParseFormat converts a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (expected json or yaml)", s)
	}
}

// Source loads a raw document value ready for tree construction.
type Source interface {
	Load(ctx context.Context) (any, error)
}

// FileSource reads a document from a file, or stdin when Path is "-".
type FileSource struct {
	Path   string
	Format Format
}

// NewFileSource creates a source for path. "-" reads from stdin.
func NewFileSource(path string, format Format) *FileSource {
	return &FileSource{Path: path, Format: format}
}

// Load reads and decodes the document.
func (s *FileSource) Load(ctx context.Context) (any, error) {
	var data []byte
	var err error

	if s.Path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
	} else {
		data, err = os.ReadFile(s.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", s.Path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", s.Path)
		}
	}

	return Decode(data, s.resolveFormat())
}

func (s *FileSource) resolveFormat() Format {
	if s.Format != FormatAuto {
		return s.Format
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses raw bytes in the given format into an untyped value.
// FormatAuto decodes as JSON.
func Decode(data []byte, format Format) (any, error) {
	var v any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse YAML")
		}
	default:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse JSON")
		}
	}
	return v, nil
}
