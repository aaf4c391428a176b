// Package crate reads the manifest of the crate under analysis.
package crate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNoManifest is returned when the directory has no Cargo.toml.
var ErrNoManifest = errors.New("no Cargo.toml found")

// Manifest holds the subset of Cargo.toml the tool cares about.
type Manifest struct {
	Package Package `toml:"package"`
}

// Package is the [package] section of a manifest.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// Load reads the manifest at <root>/Cargo.toml.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// Name returns the crate name, or the base name of root when the
// directory is not a crate. The boolean reports whether a manifest was
// found.
func Name(root string) (string, bool) {
	m, err := Load(root)
	if err != nil {
		abs, absErr := filepath.Abs(root)
		if absErr != nil {
			return filepath.Base(root), false
		}
		return filepath.Base(abs), false
	}
	if m.Package.Name == "" {
		return filepath.Base(root), true
	}
	return m.Package.Name, true
}
