package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/engine"
)

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Forget a project",
	Long: `Remove a project file from the history.

The project file itself is not touched. Removing a path that is not in the
history is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		if err := eng.Remove(&engine.RemoveRequest{Path: args[0]}); err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Forgot %s", args[0]))
		return nil
	},
}
