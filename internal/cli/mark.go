package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/engine"
)

var markCmd = &cobra.Command{
	Use:   "mark <path>",
	Short: "Record a project as just used",
	Long: `Record a project as just used, moving it to the front of the list.

The path may be a project file or a folder containing exactly one. This is the
hook editor integrations call when a project is opened.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.MarkUsed(&engine.MarkUsedRequest{Path: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Recorded %s", result.Path))
		return nil
	},
}
