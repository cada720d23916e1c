// Package config loads the CLI's optional dotfile configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// File is the shape of .jscnrc.yaml / .jscnrc.yml: default CLI flag
// values a caller can set once per project instead of passing on every
// invocation. Flags explicitly passed on the command line always win.
type File struct {
	Locale         string `yaml:"locale"`
	Format         string `yaml:"format"`
	IndentWidth    int    `yaml:"indent_width"`
	SchemaOverride string `yaml:"schema"`
	NoColor        bool   `yaml:"no_color"`
}

var candidateNames = []string{".jscnrc.yaml", ".jscnrc.yml"}

// Load searches dir for a dotfile config and unmarshals it. A missing
// file is not an error: the CLI simply falls back to its built-in
// defaults, mirroring the "look for a dotfile, ignore if absent"
// pattern of the generator config loader this is grounded on.
func Load(dir string) (*File, error) {
	var path string
	for _, name := range candidateNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
