// Package engine provides the core business logic for openproj operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates the history store, descriptor
// scaffolding, and editor launching.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - OpenRecent: Turns a selection into a recorded use and an editor launch
//   - CreateProject: Detect-or-scaffold a descriptor for a folder
//   - Prune/Remove: Explicit history editing
package engine

import (
	"fmt"

	"github.com/openproj/openproj/internal/config"
	"github.com/openproj/openproj/internal/fsops"
	"github.com/openproj/openproj/internal/history"
	"github.com/openproj/openproj/internal/launch"
	"github.com/openproj/openproj/internal/scaffold"
)

// Engine orchestrates all openproj operations.
// It is the main API surface called by the CLI.
type Engine struct {
	store      *history.Store
	scaffolder *scaffold.Scaffolder
	launcher   launch.Launcher
	settings   *config.Settings
	fs         fsops.FS
}

// New creates a new Engine with the given dependencies.
func New(
	store *history.Store,
	scaffolder *scaffold.Scaffolder,
	launcher launch.Launcher,
	settings *config.Settings,
	fs fsops.FS,
) *Engine {
	return &Engine{
		store:      store,
		scaffolder: scaffolder,
		launcher:   launcher,
		settings:   settings,
		fs:         fs,
	}
}

// Settings returns the loaded settings.
func (e *Engine) Settings() *config.Settings {
	return e.settings
}

// MarkUsedRequest records that a project was used.
type MarkUsedRequest struct {
	// Path is a project descriptor, or a folder containing exactly one.
	Path string
}

// MarkUsedResult reports what was recorded.
type MarkUsedResult struct {
	// Path is the descriptor that moved to the front of the history.
	Path string `json:"path"`
}

// MarkUsed resolves the request path to a descriptor and moves it to the
// front of the history. This is the hook the folder-open detector calls.
func (e *Engine) MarkUsed(req *MarkUsedRequest) (*MarkUsedResult, error) {
	descriptor, err := e.resolveDescriptor(req.Path)
	if err != nil {
		return nil, err
	}

	e.store.MarkUsed(descriptor)
	return &MarkUsedResult{Path: history.Normalize(descriptor)}, nil
}

// resolveDescriptor accepts either a descriptor path or a folder holding
// exactly one descriptor.
func (e *Engine) resolveDescriptor(path string) (string, error) {
	isDir, err := e.fs.IsDir(path)
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if isDir {
		return e.scaffolder.Detect(path)
	}
	return path, nil
}

// ProjectEntry is one history entry prepared for display.
type ProjectEntry struct {
	// Path is the descriptor path.
	Path string `json:"path"`

	// Label is the derived display label.
	Label string `json:"label"`

	// Missing reports that the descriptor file no longer exists.
	Missing bool `json:"missing,omitempty"`
}

// Candidates returns the openable projects, most recent first, with labels.
func (e *Engine) Candidates() []ProjectEntry {
	paths := e.store.Candidates()
	labels := history.Labels(paths)

	entries := make([]ProjectEntry, len(paths))
	for i, p := range paths {
		entries[i] = ProjectEntry{Path: p, Label: labels[i]}
	}
	return entries
}

// ListProjects returns the full history, including entries whose descriptor
// is gone, flagged as missing.
func (e *Engine) ListProjects() []ProjectEntry {
	paths := e.store.Paths()
	labels := history.Labels(paths)

	entries := make([]ProjectEntry, len(paths))
	for i, p := range paths {
		exists, err := e.fs.Exists(p)
		entries[i] = ProjectEntry{
			Path:    p,
			Label:   labels[i],
			Missing: err != nil || !exists,
		}
	}
	return entries
}
