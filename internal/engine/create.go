package engine

import (
	"errors"
	"fmt"

	"github.com/openproj/openproj/internal/config"
	"github.com/openproj/openproj/internal/history"
	"github.com/openproj/openproj/internal/scaffold"
)

// CreateProjectRequest scaffolds or adopts a descriptor for a folder.
type CreateProjectRequest struct {
	// Folder is the directory to create the project for.
	Folder string

	// Force bypasses the auto-create policy. The CLI sets it after the
	// user confirmed under the ask policy, or explicitly via --force.
	Force bool

	// NoOpen skips launching the editor after creation.
	NoOpen bool
}

// CreateProjectResult reports the outcome of CreateProject.
type CreateProjectResult struct {
	// Path is the descriptor in effect for the folder.
	Path string `json:"path"`

	// Created reports that a new descriptor was written (as opposed to an
	// existing one being adopted).
	Created bool `json:"created"`
}

// CreateProject ensures the folder has a project descriptor and records it as
// used. If the folder already holds exactly one descriptor it is adopted
// as-is; more than one is an error. Creation honors the auto-create policy:
// never refuses unless forced. The ask policy is the caller's concern — by
// the time the engine runs, the caller must already have confirmed (Force)
// or dropped the request.
func (e *Engine) CreateProject(req *CreateProjectRequest) (*CreateProjectResult, error) {
	// Adopt an existing descriptor before consulting the policy; the
	// policy governs creation only.
	existing, err := e.scaffolder.Detect(req.Folder)
	if err == nil {
		e.store.MarkUsed(existing)
		if err := e.maybeOpen(existing, req.NoOpen); err != nil {
			return nil, err
		}
		return &CreateProjectResult{Path: history.Normalize(existing)}, nil
	}
	if !errors.Is(err, scaffold.ErrNoDescriptor) {
		return nil, err
	}

	if e.settings.AutoCreate == config.AutoCreateNever && !req.Force {
		return nil, fmt.Errorf("%s: %w", req.Folder, ErrAutoCreateDisabled)
	}

	path, err := e.scaffolder.Create(req.Folder)
	if err != nil {
		return nil, err
	}

	e.store.MarkUsed(path)
	if err := e.maybeOpen(path, req.NoOpen); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Path: history.Normalize(path), Created: true}, nil
}

// maybeOpen launches the editor on the descriptor in the current window,
// matching what a folder-open flow expects.
func (e *Engine) maybeOpen(path string, noOpen bool) error {
	if noOpen {
		return nil
	}
	return e.launcher.Open(history.Action{
		TargetPath:  history.Normalize(path),
		ReuseWindow: true,
	})
}
