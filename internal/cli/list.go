package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/engine"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently used projects",
	Long: `Display the project history, most recently used first.

Entries whose project file no longer exists are hidden; pass --all to include
them (flagged as missing).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		entries := eng.ListProjects()
		if !listAll {
			live := make([]engine.ProjectEntry, 0, len(entries))
			for _, entry := range entries {
				if !entry.Missing {
					live = append(live, entry)
				}
			}
			entries = live
		}

		if jsonOutput {
			return outputJSON(entries)
		}

		if len(entries) == 0 {
			PrintInfo("No projects in history.")
			return nil
		}

		PrintSection("Recent Projects")
		for i, entry := range entries {
			_, _ = infoColor.Printf("  %d. %s", i+1, entry.Label)
			if entry.Missing {
				_, _ = warningColor.Print("  (missing)")
			}
			fmt.Println()
			_, _ = dimColor.Printf("     %s\n", entry.Path)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include entries whose project file is missing")
}
