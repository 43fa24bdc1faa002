package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/openproj/openproj/internal/config"
	"github.com/openproj/openproj/internal/engine"
	"github.com/openproj/openproj/internal/fsops"
	"github.com/openproj/openproj/internal/history"
	"github.com/openproj/openproj/internal/launch"
	"github.com/openproj/openproj/internal/logging"
	"github.com/openproj/openproj/internal/scaffold"
	"github.com/openproj/openproj/internal/storage"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	// Load user settings
	settings, err := config.LoadSettings(paths.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	log := logging.New(zapcore.WarnLevel)
	backend := storage.NewFileBackend(fs, paths.History)
	store := history.NewStore(backend, fs, log)
	scaffolder := scaffold.NewScaffolder(fs)
	launcher := launch.NewEditorLauncher(
		settings.Editor.Command,
		settings.Editor.ProjectFlag,
		settings.Editor.NewWindowFlag,
	)

	// Create engine
	return engine.New(store, scaffolder, launcher, settings, fs), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on stdin. Anything but y/yes declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	var answer string
	_, _ = fmt.Scanln(&answer)

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
