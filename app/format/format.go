// Package format decodes and encodes flat settings files in known data formats.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// supportedFormats lists all supported file formats.
var supportedFormats = []string{"yaml", "json", "toml", "ini"}

// Service converts settings files, a flat map of setting key to value.
type Service struct{}

// NewService creates a new format service.
func NewService() *Service {
	return &Service{}
}

// SupportedFormats returns the list of supported formats.
func (s *Service) SupportedFormats() []string {
	return supportedFormats
}

// IsValidFormat checks if format is in the list of supported formats.
func (s *Service) IsValidFormat(format string) bool {
	return slices.Contains(supportedFormats, format)
}

// FormatOf returns the format of a file by its extension.
func (s *Service) FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return "yaml", nil
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	case ".ini", ".env":
		return "ini", nil
	default:
		return "", fmt.Errorf("unsupported settings file extension %q", ext)
	}
}

// Decode parses a flat settings document. Nested values are rejected.
func (s *Service) Decode(format string, data []byte) (map[string]any, error) {
	var res map[string]any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&res); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("invalid toml: %w", err)
		}
	case "ini":
		cfg, err := ini.Load(data)
		if err != nil {
			return nil, fmt.Errorf("invalid ini: %w", err)
		}
		res = map[string]any{}
		for _, k := range cfg.Section(ini.DefaultSection).Keys() {
			res[k.Name()] = k.Value()
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	for k, v := range res {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("setting %s: nested values are not supported", k)
		case nil:
			res[k] = ""
		}
	}
	return res, nil
}

// Encode writes values as a flat settings document. Whole floats are written as integers.
func (s *Service) Encode(w io.Writer, format string, values map[string]any) error {
	values = normalize(values)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(values); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case "toml":
		if err := toml.NewEncoder(w).Encode(values); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case "ini":
		cfg := ini.Empty()
		sec := cfg.Section(ini.DefaultSection)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, err := sec.NewKey(k, fmt.Sprint(values[k])); err != nil {
				return fmt.Errorf("encode ini key %s: %w", k, err)
			}
		}
		if _, err := cfg.WriteTo(w); err != nil {
			return fmt.Errorf("encode ini: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

func normalize(values map[string]any) map[string]any {
	res := make(map[string]any, len(values))
	for k, v := range values {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			res[k] = int64(f)
			continue
		}
		if v == nil {
			res[k] = ""
			continue
		}
		res[k] = v
	}
	return res
}
