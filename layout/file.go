package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Supported description formats.
const (
	FormatXKB  = "xkb"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFromPath guesses a description format from the file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatXKB
	}
}

// LoadFile reads a layout from disk. Files ending in .json, .yaml/.yml and
// .toml hold a static Description; anything else is parsed as a compiled
// XKB keymap.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	src, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Decode parses a layout in the given format.
func Decode(data []byte, format string) (Source, error) {
	if format == FormatXKB {
		return ParseKeymap(bytes.NewReader(data))
	}
	var d Description
	switch format {
	case FormatJSON:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}
	return NewStaticFromDescription(d)
}

// Encode serializes a layout description as JSON, YAML or TOML.
func Encode(d Description, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatTOML:
		return toml.Marshal(d)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
