package cmd

import (
	"github.com/spf13/cobra"

	"setup-magento/internal/logger"
	"setup-magento/internal/project"
	"setup-magento/internal/state"
)

// createCmd scaffolds the project files without touching Docker, for users
// who want to review or edit the generated files before installing. It
// declares no prerequisites and therefore always runs.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold the project files (.env, compose file, .gitignore) without starting anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		written, err := project.Scaffold(".", cfg, force)
		if err != nil {
			return err
		}
		if len(written) == 0 {
			logger.Info("[INFO] Project files already present, nothing to do.\n")
			return nil
		}
		for _, path := range written {
			logger.Info("[INFO] Wrote %s\n", path)
		}
		st := state.Load(statePath)
		st.Scaffolded = true
		state.Save(statePath, st)
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVar(&force, "force", false, "Regenerate project files even if they exist")
	rootCmd.AddCommand(createCmd)
}
