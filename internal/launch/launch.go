// Package launch executes the actions the history store decides on, by
// invoking the host editor. Keeping this behind an interface keeps the rest
// of the tool free of editor dependencies.
package launch

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/openproj/openproj/internal/history"
)

// Launcher opens or focuses a project in the host editor.
type Launcher interface {
	// Open executes the action: open the target descriptor, reusing the
	// current window or requesting a new one per the action.
	Open(action history.Action) error
}

// EditorLauncher runs the editor binary (Sublime Text's subl by default).
type EditorLauncher struct {
	command       string
	projectFlag   string
	newWindowFlag string
}

// NewEditorLauncher creates a launcher invoking command with the given flags.
func NewEditorLauncher(command, projectFlag, newWindowFlag string) *EditorLauncher {
	return &EditorLauncher{
		command:       command,
		projectFlag:   projectFlag,
		newWindowFlag: newWindowFlag,
	}
}

// Open invokes the editor for the action's target.
func (l *EditorLauncher) Open(action history.Action) error {
	cmd := exec.Command(l.command, l.args(action)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			return fmt.Errorf("failed to launch %s: %w: %s", l.command, err, msg)
		}
		return fmt.Errorf("failed to launch %s: %w", l.command, err)
	}

	return nil
}

// args builds the editor argument list for an action.
func (l *EditorLauncher) args(action history.Action) []string {
	args := []string{l.projectFlag, action.TargetPath}
	if !action.ReuseWindow {
		args = append(args, l.newWindowFlag)
	}
	return args
}
