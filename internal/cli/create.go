package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openproj/openproj/internal/config"
	"github.com/openproj/openproj/internal/engine"
	"github.com/openproj/openproj/internal/history"
)

var (
	createForce  bool
	createNoOpen bool
)

var createCmd = &cobra.Command{
	Use:   "create [folder]",
	Short: "Create a project file for a folder",
	Long: `Create a project file for a folder (default: the current directory).

If the folder already contains exactly one project file, it is adopted and
recorded instead of creating a new one. Whether a new file is created without
asking is governed by the auto_create setting (always, ask, never); --force
bypasses the setting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		folder := "."
		if len(args) == 1 {
			folder = args[0]
		}
		if folder == "." {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			folder = cwd
		}

		force := createForce
		if !force {
			switch eng.Settings().AutoCreate {
			case config.AutoCreateAlways:
				force = true
			case config.AutoCreateAsk:
				name := filepath.Base(folder) + history.DescriptorExt
				if !confirm(fmt.Sprintf("Create project file %q?", name)) {
					PrintInfo("Aborted.")
					return nil
				}
				force = true
			}
			// AutoCreateNever: leave force unset; the engine refuses
			// unless an existing project file can be adopted.
		}

		result, err := eng.CreateProject(&engine.CreateProjectRequest{
			Folder: folder,
			Force:  force,
			NoOpen: createNoOpen,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Created {
			PrintSuccess(fmt.Sprintf("Created project file %s", result.Path))
		} else {
			PrintInfo(fmt.Sprintf("Project file %s already exists.", result.Path))
		}
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&createForce, "force", false, "Create without asking, regardless of the auto_create setting")
	createCmd.Flags().BoolVar(&createNoOpen, "no-open", false, "Do not open the project after creating it")
}
