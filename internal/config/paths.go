// Package config manages openproj configuration and filesystem paths.
//
// The default root is ~/.openproj/, holding the persisted project history and
// the optional settings file. The root can be relocated with OPENPROJ_ROOT.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by openproj.
type Paths struct {
	// Root is the base directory for all openproj data (default: ~/.openproj)
	Root string

	// History is the persisted MRU project list
	History string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths for openproj.
// Paths can be overridden with environment variables:
// - OPENPROJ_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("OPENPROJ_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".openproj")
	}

	return &Paths{
		Root:    root,
		History: filepath.Join(root, "history.json"),
		Config:  filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates the root directory if it doesn't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
