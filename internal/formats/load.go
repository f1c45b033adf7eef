package formats

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// document is the on-disk shape shared by TOML and YAML table files.
type document struct {
	Formats []Category `toml:"formats" yaml:"formats"`
}

// Load reads a Format Table from path. The decoder is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read format table: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("format table %s: unsupported file type %q (use .toml, .yaml or .yml)", path, ext)
	}
}

// ParseTOML decodes a [[formats]] array of tables.
func ParseTOML(data []byte) (*Table, error) {
	var doc document
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse format table: %w", err)
	}
	return New(doc.Formats)
}

// ParseYAML decodes a top-level formats sequence.
func ParseYAML(data []byte) (*Table, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse format table: %w", err)
	}
	return New(doc.Formats)
}
