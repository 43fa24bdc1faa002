package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/engine"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop entries whose project file is gone",
	Long: `Permanently remove history entries whose project file no longer exists.

Dead entries are already hidden from the switcher; prune cleans them out of
the persisted history as well. Use --dry-run to preview what would be removed
without removing anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Prune(&engine.PruneRequest{DryRun: pruneDryRun})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Removed) == 0 {
			PrintInfo("No dead entries in history.")
			return nil
		}

		if result.DryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would remove %s:", PrintCount(len(result.Removed), "dead entry", "dead entries")))
			PrintList(result.Removed, 1)
			fmt.Println()
			PrintWarning("Run without --dry-run to actually remove these entries.")
		} else {
			PrintSuccess(fmt.Sprintf("Removed %s", PrintCount(len(result.Removed), "dead entry", "dead entries")))
			PrintList(result.Removed, 1)
		}

		return nil
	},
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Preview what would be removed without removing")
}
