package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/engine"
	"github.com/openproj/openproj/internal/history"
)

var openNewWindow bool

var openCmd = &cobra.Command{
	Use:   "open [number]",
	Short: "Open a recently used project",
	Long: `Open a project from the most-recently-used list.

Without arguments, the candidate list is shown and a selection is read from
stdin. Passing a number (as displayed by the list) opens it directly.

By default the current editor window is reused; pass --new-window to open the
project in a separate window instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		entries := eng.Candidates()
		if len(entries) == 0 {
			PrintInfo("No projects in history.")
			return nil
		}

		if jsonOutput && len(args) == 0 {
			return outputJSON(entries)
		}

		var number int
		if len(args) == 1 {
			number, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project number %q", args[0])
			}
		} else {
			labels := make([]string, len(entries))
			for i, entry := range entries {
				labels[i] = entry.Label
			}

			PrintSection("Recent Projects")
			PrintNumberedList(labels, 1)
			fmt.Println()

			number, err = promptSelection(len(entries))
			if err != nil {
				return err
			}
			if number == 0 {
				return nil
			}
		}

		result, err := eng.OpenRecent(&engine.OpenRecentRequest{
			Index:     number - 1,
			NewWindow: openNewWindow,
		})
		if err != nil {
			if errors.Is(err, history.ErrInvalidSelection) {
				return fmt.Errorf("no project %d: the list has %s", number,
					PrintCount(len(entries), "entry", "entries"))
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Opened %s", result.Action.TargetPath))
		return nil
	},
}

// promptSelection reads a 1-based selection from stdin; 0 cancels.
func promptSelection(max int) (int, error) {
	fmt.Printf("Select project [1-%d], 0 to cancel: ", max)

	var choice int
	if _, err := fmt.Scanln(&choice); err != nil {
		return 0, fmt.Errorf("failed to read selection: %w", err)
	}
	if choice < 0 || choice > max {
		return 0, fmt.Errorf("selection %d out of range", choice)
	}
	return choice, nil
}

func init() {
	openCmd.Flags().BoolVarP(&openNewWindow, "new-window", "n", false, "Open the project in a new window")
}
