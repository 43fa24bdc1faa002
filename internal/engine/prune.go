package engine

// PruneRequest removes dead entries from the persisted history.
type PruneRequest struct {
	// DryRun previews the removals without mutating anything.
	DryRun bool
}

// PruneResult reports which entries were (or would be) removed.
type PruneResult struct {
	// Removed lists the affected descriptor paths.
	Removed []string `json:"removed"`

	// DryRun echoes the request flag.
	DryRun bool `json:"dryRun"`
}

// Prune permanently drops history entries whose descriptor file is gone.
// With DryRun it only reports what would go, leaving persisted state alone.
func (e *Engine) Prune(req *PruneRequest) (*PruneResult, error) {
	if req.DryRun {
		var dead []string
		for _, p := range e.store.Paths() {
			exists, err := e.fs.Exists(p)
			if err == nil && exists {
				continue
			}
			dead = append(dead, p)
		}
		return &PruneResult{Removed: dead, DryRun: true}, nil
	}

	return &PruneResult{Removed: e.store.Prune()}, nil
}

// RemoveRequest deletes one entry from the history.
type RemoveRequest struct {
	// Path is the descriptor to forget.
	Path string
}

// Remove forgets the given descriptor. Removing an unknown path is a no-op.
func (e *Engine) Remove(req *RemoveRequest) error {
	e.store.Remove(req.Path)
	return nil
}
