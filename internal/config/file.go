package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile overlays the settings of a YAML (.yaml, .yml) or TOML (.toml)
// file onto c. Keys absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read config file: %v", err)}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid YAML in %s: %v", path, err)}
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("invalid TOML in %s: %v", path, err)}
		}
	default:
		return &ConfigError{Field: "config", Message: fmt.Sprintf("unsupported config file extension %q (expected .yaml, .yml or .toml)", ext)}
	}

	return nil
}
