package engine

import (
	"github.com/openproj/openproj/internal/history"
)

// OpenRecentRequest selects a project from the candidate list.
type OpenRecentRequest struct {
	// Index is the position in the candidate list (0 = most recent).
	Index int

	// NewWindow opens the project in a new window instead of reusing the
	// current one.
	NewWindow bool
}

// OpenRecentResult reports what was opened.
type OpenRecentResult struct {
	// Action is what the launcher executed.
	Action history.Action `json:"action"`
}

// OpenRecent commits the selection at req.Index and executes the resulting
// action through the launcher. The index refers to the candidate list most
// recently returned by Candidates: the displayed list stays the commit basis
// even when a descriptor vanishes between display and selection, so the
// number the user picked cannot drift to a different entry. An empty history
// is ErrNoProjects; a selection without a prior candidate query, or out of
// range, surfaces history.ErrInvalidSelection.
func (e *Engine) OpenRecent(req *OpenRecentRequest) (*OpenRecentResult, error) {
	if e.store.Len() == 0 {
		return nil, ErrNoProjects
	}

	mode := history.ReuseWindow
	if req.NewWindow {
		mode = history.NewWindowOrFocus
	}

	action, err := e.store.Commit(req.Index, mode)
	if err != nil {
		return nil, err
	}

	if err := e.launcher.Open(action); err != nil {
		return nil, err
	}

	return &OpenRecentResult{Action: action}, nil
}
