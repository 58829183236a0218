package assets

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for placement files with an unknown extension.
var ErrFormat = errors.New("assets: unsupported placement file format")

// file is the on-disk layout shared by the YAML and TOML forms.
type file struct {
	Placements []Placement `yaml:"placements" toml:"placements"`
}

// LoadPlacements reads and validates a placement table from a .yaml, .yml
// or .toml file.
func LoadPlacements(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading placements: %w", err)
	}
	return ParsePlacements(data, filepath.Ext(path))
}

// ParsePlacements decodes and validates a placement table. ext selects the
// format and includes the leading dot.
func ParsePlacements(data []byte, ext string) (Table, error) {
	var f file
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing placements yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing placements toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	t := Table(f.Placements)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal encodes t in the format selected by ext.
func Marshal(t Table, ext string) ([]byte, error) {
	f := file{Placements: t}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(f)
	case ".toml":
		return toml.Marshal(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}
