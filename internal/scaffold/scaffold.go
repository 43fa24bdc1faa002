// Package scaffold detects and creates project descriptor files for folders.
//
// A folder is considered to have a project when exactly one descriptor file
// sits at its top level. Create writes a minimal descriptor binding the
// folder itself, named after the folder.
package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/openproj/openproj/internal/fsops"
	"github.com/openproj/openproj/internal/history"
)

var (
	// ErrNoDescriptor indicates the folder holds no descriptor file.
	ErrNoDescriptor = errors.New("no project file in folder")

	// ErrMultipleDescriptors indicates the folder holds more than one
	// descriptor file, so there is no unambiguous project to use.
	ErrMultipleDescriptors = errors.New("more than one project file in folder")

	// ErrDescriptorExists indicates the descriptor Create would write is
	// already present.
	ErrDescriptorExists = errors.New("project file already exists")
)

// descriptorTemplate binds the containing folder and leaves settings empty.
const descriptorTemplate = `{
	"folders": [
		{
			"path": "."
		}
	],

	"settings": {
	}
}
`

// Scaffolder detects and creates descriptors on a filesystem.
type Scaffolder struct {
	fs fsops.FS
}

// NewScaffolder creates a new Scaffolder.
func NewScaffolder(fs fsops.FS) *Scaffolder {
	return &Scaffolder{fs: fs}
}

// Detect returns the single descriptor at the top level of folder.
// Zero descriptors is ErrNoDescriptor; more than one is
// ErrMultipleDescriptors.
func (s *Scaffolder) Detect(folder string) (string, error) {
	folder = history.Normalize(folder)

	matches, err := s.fs.Glob(filepath.Join(folder, "*"+history.DescriptorExt))
	if err != nil {
		return "", fmt.Errorf("failed to scan folder %s: %w", folder, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", folder, ErrNoDescriptor)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s: %w", folder, ErrMultipleDescriptors)
	}
}

// Create writes a fresh descriptor named after the folder inside it and
// returns its path. An existing file at that path is ErrDescriptorExists.
func (s *Scaffolder) Create(folder string) (string, error) {
	folder = history.Normalize(folder)

	name := filepath.Base(folder) + history.DescriptorExt
	path := filepath.Join(folder, name)

	exists, err := s.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check for %s: %w", path, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", name, ErrDescriptorExists)
	}

	if err := s.fs.AtomicWrite(path, []byte(descriptorTemplate), 0644); err != nil {
		return "", fmt.Errorf("failed to write project file: %w", err)
	}

	return path, nil
}
