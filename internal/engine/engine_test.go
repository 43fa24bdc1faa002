package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openproj/openproj/internal/config"
	"github.com/openproj/openproj/internal/fsops"
	"github.com/openproj/openproj/internal/history"
	"github.com/openproj/openproj/internal/logging"
	"github.com/openproj/openproj/internal/scaffold"
	"github.com/openproj/openproj/internal/storage"
)

// fakeLauncher records actions instead of spawning an editor.
type fakeLauncher struct {
	actions []history.Action
	err     error
}

func (l *fakeLauncher) Open(action history.Action) error {
	if l.err != nil {
		return l.err
	}
	l.actions = append(l.actions, action)
	return nil
}

// newTestEngine builds an engine over a temp directory and returns it with
// the directory, the recording launcher, and the settings for tweaking.
func newTestEngine(t *testing.T) (*Engine, string, *fakeLauncher, *config.Settings) {
	t.Helper()

	tmpDir := t.TempDir()
	fs := fsops.NewRealFS()
	backend := storage.NewFileBackend(fs, filepath.Join(tmpDir, "state", "history.json"))
	store := history.NewStore(backend, fs, logging.Nop())
	launcher := &fakeLauncher{}
	settings := config.DefaultSettings()

	eng := New(store, scaffold.NewScaffolder(fs), launcher, settings, fs)
	return eng, tmpDir, launcher, settings
}

func makeProjectFolder(t *testing.T, dir, name string) (folder, descriptor string) {
	t.Helper()

	folder = filepath.Join(dir, name)
	if err := os.Mkdir(folder, 0755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	descriptor = filepath.Join(folder, name+history.DescriptorExt)
	if err := os.WriteFile(descriptor, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write descriptor: %v", err)
	}
	return folder, descriptor
}

func TestEngine_MarkUsed(t *testing.T) {
	t.Run("accepts a descriptor path", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		_, descriptor := makeProjectFolder(t, tmpDir, "app")

		result, err := eng.MarkUsed(&MarkUsedRequest{Path: descriptor})
		if err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if result.Path != descriptor {
			t.Errorf("Path = %q, want %q", result.Path, descriptor)
		}

		candidates := eng.Candidates()
		if len(candidates) != 1 || candidates[0].Path != descriptor {
			t.Errorf("unexpected candidates: %+v", candidates)
		}
	})

	t.Run("resolves a folder to its single descriptor", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		folder, descriptor := makeProjectFolder(t, tmpDir, "app")

		result, err := eng.MarkUsed(&MarkUsedRequest{Path: folder})
		if err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if result.Path != descriptor {
			t.Errorf("Path = %q, want %q", result.Path, descriptor)
		}
	})

	t.Run("fails for a folder without a descriptor", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		folder := filepath.Join(tmpDir, "bare")
		if err := os.Mkdir(folder, 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}

		_, err := eng.MarkUsed(&MarkUsedRequest{Path: folder})
		if !errors.Is(err, scaffold.ErrNoDescriptor) {
			t.Errorf("expected ErrNoDescriptor, got %v", err)
		}
	})
}

func TestEngine_OpenRecent(t *testing.T) {
	t.Run("fails with no history", func(t *testing.T) {
		eng, _, _, _ := newTestEngine(t)

		_, err := eng.OpenRecent(&OpenRecentRequest{Index: 0})
		if !errors.Is(err, ErrNoProjects) {
			t.Errorf("expected ErrNoProjects, got %v", err)
		}
	})

	t.Run("launches the selected project and reorders", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		_, older := makeProjectFolder(t, tmpDir, "older")
		_, newer := makeProjectFolder(t, tmpDir, "newer")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: older}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: newer}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		eng.Candidates()

		result, err := eng.OpenRecent(&OpenRecentRequest{Index: 1})
		if err != nil {
			t.Fatalf("OpenRecent failed: %v", err)
		}

		if result.Action.TargetPath != older {
			t.Errorf("TargetPath = %q, want %q", result.Action.TargetPath, older)
		}
		if !result.Action.ReuseWindow {
			t.Error("expected ReuseWindow=true by default")
		}
		if len(launcher.actions) != 1 {
			t.Fatalf("expected 1 launch, got %d", len(launcher.actions))
		}

		candidates := eng.Candidates()
		if candidates[0].Path != older {
			t.Errorf("expected %q at front after open, got %q", older, candidates[0].Path)
		}
	})

	t.Run("new window clears the reuse flag", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		_, descriptor := makeProjectFolder(t, tmpDir, "app")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: descriptor}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		eng.Candidates()

		if _, err := eng.OpenRecent(&OpenRecentRequest{Index: 0, NewWindow: true}); err != nil {
			t.Fatalf("OpenRecent failed: %v", err)
		}
		if launcher.actions[0].ReuseWindow {
			t.Error("expected ReuseWindow=false with NewWindow")
		}
	})

	t.Run("bad index surfaces invalid selection", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		_, descriptor := makeProjectFolder(t, tmpDir, "app")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: descriptor}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		eng.Candidates()

		_, err := eng.OpenRecent(&OpenRecentRequest{Index: 99})
		if !errors.Is(err, history.ErrInvalidSelection) {
			t.Errorf("expected ErrInvalidSelection, got %v", err)
		}
		if len(launcher.actions) != 0 {
			t.Error("launcher must not run on a failed selection")
		}
	})

	t.Run("launcher failures propagate", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		launcher.err = errors.New("editor not installed")
		_, descriptor := makeProjectFolder(t, tmpDir, "app")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: descriptor}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		eng.Candidates()

		if _, err := eng.OpenRecent(&OpenRecentRequest{Index: 0}); err == nil {
			t.Error("expected launcher error to propagate")
		}
	})

	t.Run("selection follows the displayed list", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		_, oldest := makeProjectFolder(t, tmpDir, "oldest")
		_, middle := makeProjectFolder(t, tmpDir, "middle")
		_, newest := makeProjectFolder(t, tmpDir, "newest")
		for _, path := range []string{oldest, middle, newest} {
			if _, err := eng.MarkUsed(&MarkUsedRequest{Path: path}); err != nil {
				t.Fatalf("MarkUsed failed: %v", err)
			}
		}

		// The user saw [newest, middle, oldest]. A descriptor vanishing
		// afterwards must not shift what their number refers to.
		eng.Candidates()
		if err := os.Remove(newest); err != nil {
			t.Fatalf("failed to delete descriptor: %v", err)
		}

		result, err := eng.OpenRecent(&OpenRecentRequest{Index: 2})
		if err != nil {
			t.Fatalf("OpenRecent failed: %v", err)
		}
		if result.Action.TargetPath != oldest {
			t.Errorf("TargetPath = %q, want %q", result.Action.TargetPath, oldest)
		}
		if len(launcher.actions) != 1 {
			t.Fatalf("expected 1 launch, got %d", len(launcher.actions))
		}
	})

	t.Run("selection without a displayed list is invalid", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		_, descriptor := makeProjectFolder(t, tmpDir, "app")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: descriptor}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}

		_, err := eng.OpenRecent(&OpenRecentRequest{Index: 0})
		if !errors.Is(err, history.ErrInvalidSelection) {
			t.Errorf("expected ErrInvalidSelection, got %v", err)
		}
		if len(launcher.actions) != 0 {
			t.Error("launcher must not run on a failed selection")
		}
	})
}

func TestEngine_CreateProject(t *testing.T) {
	t.Run("creates, records, and opens a new descriptor", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		folder := filepath.Join(tmpDir, "fresh")
		if err := os.Mkdir(folder, 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}

		result, err := eng.CreateProject(&CreateProjectRequest{Folder: folder, Force: true})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		if !result.Created {
			t.Error("expected Created=true")
		}
		want := filepath.Join(folder, "fresh"+history.DescriptorExt)
		if result.Path != want {
			t.Errorf("Path = %q, want %q", result.Path, want)
		}
		if len(launcher.actions) != 1 || !launcher.actions[0].ReuseWindow {
			t.Errorf("expected one reuse-window launch, got %+v", launcher.actions)
		}

		candidates := eng.Candidates()
		if len(candidates) != 1 || candidates[0].Path != want {
			t.Errorf("descriptor not recorded: %+v", candidates)
		}
	})

	t.Run("adopts an existing descriptor without creating", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		folder, descriptor := makeProjectFolder(t, tmpDir, "app")

		result, err := eng.CreateProject(&CreateProjectRequest{Folder: folder})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		if result.Created {
			t.Error("expected Created=false for adopted descriptor")
		}
		if result.Path != descriptor {
			t.Errorf("Path = %q, want %q", result.Path, descriptor)
		}
	})

	t.Run("fails on ambiguous folders", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		folder := filepath.Join(tmpDir, "app")
		if err := os.Mkdir(folder, 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}
		for _, name := range []string{"one", "two"} {
			path := filepath.Join(folder, name+history.DescriptorExt)
			if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
				t.Fatalf("failed to write descriptor: %v", err)
			}
		}

		_, err := eng.CreateProject(&CreateProjectRequest{Folder: folder, Force: true})
		if !errors.Is(err, scaffold.ErrMultipleDescriptors) {
			t.Errorf("expected ErrMultipleDescriptors, got %v", err)
		}
	})

	t.Run("never policy refuses unless forced", func(t *testing.T) {
		eng, tmpDir, _, settings := newTestEngine(t)
		settings.AutoCreate = config.AutoCreateNever
		folder := filepath.Join(tmpDir, "fresh")
		if err := os.Mkdir(folder, 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}

		_, err := eng.CreateProject(&CreateProjectRequest{Folder: folder})
		if !errors.Is(err, ErrAutoCreateDisabled) {
			t.Fatalf("expected ErrAutoCreateDisabled, got %v", err)
		}

		if _, err := eng.CreateProject(&CreateProjectRequest{Folder: folder, Force: true}); err != nil {
			t.Errorf("forced create failed: %v", err)
		}
	})

	t.Run("no-open skips the launcher", func(t *testing.T) {
		eng, tmpDir, launcher, _ := newTestEngine(t)
		folder := filepath.Join(tmpDir, "fresh")
		if err := os.Mkdir(folder, 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}

		if _, err := eng.CreateProject(&CreateProjectRequest{Folder: folder, Force: true, NoOpen: true}); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		if len(launcher.actions) != 0 {
			t.Errorf("expected no launches, got %+v", launcher.actions)
		}
	})
}

func TestEngine_Prune(t *testing.T) {
	t.Run("dry run reports without mutating", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		_, dead := makeProjectFolder(t, tmpDir, "dead")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: dead}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if err := os.Remove(dead); err != nil {
			t.Fatalf("failed to delete descriptor: %v", err)
		}

		result, err := eng.Prune(&PruneRequest{DryRun: true})
		if err != nil {
			t.Fatalf("Prune failed: %v", err)
		}
		if len(result.Removed) != 1 || result.Removed[0] != dead {
			t.Errorf("Removed = %v, want [%s]", result.Removed, dead)
		}

		if entries := eng.ListProjects(); len(entries) != 1 {
			t.Errorf("dry run mutated the history: %+v", entries)
		}
	})

	t.Run("prune drops dead entries", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		_, dead := makeProjectFolder(t, tmpDir, "dead")
		_, live := makeProjectFolder(t, tmpDir, "live")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: dead}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: live}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if err := os.Remove(dead); err != nil {
			t.Fatalf("failed to delete descriptor: %v", err)
		}

		result, err := eng.Prune(&PruneRequest{})
		if err != nil {
			t.Fatalf("Prune failed: %v", err)
		}
		if len(result.Removed) != 1 || result.Removed[0] != dead {
			t.Errorf("Removed = %v, want [%s]", result.Removed, dead)
		}

		entries := eng.ListProjects()
		if len(entries) != 1 || entries[0].Path != live {
			t.Errorf("unexpected history after prune: %+v", entries)
		}
	})
}

func TestEngine_ListProjects(t *testing.T) {
	t.Run("flags missing descriptors", func(t *testing.T) {
		eng, tmpDir, _, _ := newTestEngine(t)
		_, gone := makeProjectFolder(t, tmpDir, "gone")
		_, live := makeProjectFolder(t, tmpDir, "live")
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: gone}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if _, err := eng.MarkUsed(&MarkUsedRequest{Path: live}); err != nil {
			t.Fatalf("MarkUsed failed: %v", err)
		}
		if err := os.Remove(gone); err != nil {
			t.Fatalf("failed to delete descriptor: %v", err)
		}

		entries := eng.ListProjects()
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Path != live || entries[0].Missing {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Path != gone || !entries[1].Missing {
			t.Errorf("unexpected second entry: %+v", entries[1])
		}
		if entries[0].Label != "live" || entries[1].Label != "gone" {
			t.Errorf("unexpected labels: %q, %q", entries[0].Label, entries[1].Label)
		}
	})
}
