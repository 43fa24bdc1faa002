// Package history maintains the most-recently-used list of project
// descriptors.
//
// The Store owns the ordered, deduplicated list of descriptor paths, persists
// it write-through after every mutation, and serves the pruned candidate view
// the switcher displays. It decides what a selection means but never opens
// windows itself; callers execute the returned Action.
//
// Key concepts:
//   - Most-recent-first ordering: index 0 is always the last used project
//   - Set semantics on path, list semantics on order
//   - Pruning is a read-time view filter; Prune is the explicit mutation
//   - Persistence failures degrade to in-memory state, never to an error
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/openproj/openproj/internal/fsops"
	"github.com/openproj/openproj/internal/logging"
	"github.com/openproj/openproj/internal/storage"
)

// DescriptorExt is the file extension of a project descriptor.
const DescriptorExt = ".sublime-project"

// ErrInvalidSelection indicates a commit index that does not refer to the
// candidate list most recently produced. Callers must re-query candidates
// rather than retry with the same index.
var ErrInvalidSelection = errors.New("invalid selection")

// Mode selects how a committed project should be opened.
type Mode int

const (
	// ReuseWindow switches the current window to the selected project.
	ReuseWindow Mode = iota

	// NewWindowOrFocus opens the project in a new window, or focuses an
	// existing window that already has it open.
	NewWindowOrFocus
)

// Action tells the caller what to do after a selection was committed.
// The store records state; executing the action is the caller's job.
type Action struct {
	// TargetPath is the descriptor to open.
	TargetPath string `json:"targetPath"`

	// ReuseWindow directs the caller to switch the current window instead
	// of opening a new one.
	ReuseWindow bool `json:"reuseWindow"`
}

// stateFile is the persisted layout: an ordered list of absolute descriptor
// paths, index 0 = most recently used.
type stateFile struct {
	Projects []string `json:"projects"`
}

// Store is the MRU project list manager. It is not safe for concurrent use;
// callers are expected to serialize access (the CLI runs single-threaded).
type Store struct {
	backend storage.Backend
	fs      fsops.FS
	log     *logging.Logger

	loaded bool
	paths  []string

	// candidates is the snapshot returned by the last Candidates call.
	// Commit indexes into this snapshot.
	candidates []string
}

// NewStore creates a Store over the given backend. State is loaded lazily on
// first use; call Load to force it.
func NewStore(backend storage.Backend, fs fsops.FS, log *logging.Logger) *Store {
	return &Store{
		backend: backend,
		fs:      fs,
		log:     log,
	}
}

// Normalize resolves a path to the canonical absolute form used for
// comparison and storage.
func Normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Load reads persisted state. A missing or malformed state file is not an
// error: the store starts empty and the condition is logged. Loading twice
// reloads from the backend and discards any cached candidate snapshot.
func (s *Store) Load() {
	s.loaded = true
	s.paths = nil
	s.candidates = nil

	data, err := s.backend.Read()
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("history state unreadable, starting empty", zap.Error(err))
		}
		return
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		s.log.Warn("history state malformed, starting empty", zap.Error(err))
		return
	}

	// The state file is hand-editable, so normalize and deduplicate
	// defensively. First occurrence wins, preserving recency order.
	seen := make(map[string]bool, len(state.Projects))
	for _, p := range state.Projects {
		n := Normalize(p)
		if seen[n] {
			continue
		}
		seen[n] = true
		s.paths = append(s.paths, n)
	}
}

func (s *Store) ensureLoaded() {
	if !s.loaded {
		s.Load()
	}
}

// MarkUsed records that the project at path was just used: the entry moves to
// index 0 (inserted if new) and the full list is persisted immediately. A
// failed flush keeps the in-memory change and is logged, not returned.
func (s *Store) MarkUsed(path string) {
	s.ensureLoaded()
	s.moveToFront(Normalize(path))
	s.persist()
}

// moveToFront removes p from its current position (if present) and inserts it
// at index 0.
func (s *Store) moveToFront(p string) {
	kept := make([]string, 0, len(s.paths)+1)
	kept = append(kept, p)
	for _, existing := range s.paths {
		if existing != p {
			kept = append(kept, existing)
		}
	}
	s.paths = kept
}

// Candidates returns the ordered list of entries whose descriptor file still
// exists on disk, most recent first. Missing entries are filtered from the
// view only; the persisted list is not mutated. The returned snapshot is what
// a subsequent Commit indexes into.
func (s *Store) Candidates() []string {
	s.ensureLoaded()

	out := make([]string, 0, len(s.paths))
	for _, p := range s.paths {
		exists, err := s.fs.Exists(p)
		if err != nil || !exists {
			continue
		}
		out = append(out, p)
	}

	s.candidates = append([]string(nil), out...)
	return out
}

// Commit treats the candidate at index as just used and returns the Action
// the caller must execute. The index refers to the snapshot most recently
// returned by Candidates; anything out of range (including committing before
// any Candidates call) fails with ErrInvalidSelection and leaves the list
// untouched.
//
// Index 0 under ReuseWindow still yields an Action: the user asked to switch
// context, so the caller must focus the project even though recency is
// unchanged.
func (s *Store) Commit(index int, mode Mode) (Action, error) {
	s.ensureLoaded()

	if index < 0 || index >= len(s.candidates) {
		return Action{}, fmt.Errorf("index %d with %d candidates: %w",
			index, len(s.candidates), ErrInvalidSelection)
	}

	target := s.candidates[index]
	s.moveToFront(target)
	s.persist()

	return Action{
		TargetPath:  target,
		ReuseWindow: mode == ReuseWindow,
	}, nil
}

// Remove deletes path from the list if present and persists. Removing an
// absent path is a no-op.
func (s *Store) Remove(path string) {
	s.ensureLoaded()

	p := Normalize(path)
	kept := s.paths[:0]
	removed := false
	for _, existing := range s.paths {
		if existing == p {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	s.paths = kept

	if removed {
		s.persist()
	}
}

// Prune permanently drops entries whose descriptor file no longer exists and
// persists the cleaned list. It returns the removed paths. This is the
// explicit, destructive counterpart to the non-destructive filtering that
// Candidates performs.
func (s *Store) Prune() []string {
	s.ensureLoaded()

	var removed []string
	kept := s.paths[:0]
	for _, p := range s.paths {
		exists, err := s.fs.Exists(p)
		if err == nil && exists {
			kept = append(kept, p)
			continue
		}
		removed = append(removed, p)
	}
	s.paths = kept

	if len(removed) > 0 {
		s.persist()
	}
	return removed
}

// Paths returns a copy of the full list, most recent first, without pruning.
func (s *Store) Paths() []string {
	s.ensureLoaded()
	return append([]string(nil), s.paths...)
}

// Len returns the number of entries, without pruning.
func (s *Store) Len() int {
	s.ensureLoaded()
	return len(s.paths)
}

// persist flushes the full list write-through. Flush failures are logged and
// swallowed: the in-memory list stays authoritative for the session.
func (s *Store) persist() {
	projects := s.paths
	if projects == nil {
		projects = []string{}
	}

	data, err := json.MarshalIndent(stateFile{Projects: projects}, "", "  ")
	if err != nil {
		s.log.Warn("failed to encode history state", zap.Error(err))
		return
	}

	if err := s.backend.Write(data); err != nil {
		s.log.Warn("failed to persist history state, keeping in-memory list",
			zap.Error(err))
	}
}
