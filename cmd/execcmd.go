package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// execCmd runs a one-off shell command inside a container, streaming its
// output. Container liveness is probed fresh by the executor; a down
// container aborts before anything is spawned.
var execCmd = &cobra.Command{
	Use:   "exec <container> <command...>",
	Short: "Run a command inside a container",
	Long: `Run a command inside a container.

Flags intended for the in-container command must be separated with --, e.g.:
  setup-magento exec php ls -- -la`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		container := args[0]
		command := strings.Join(args[1:], " ")

		res, err := newCompose(cfg).Exec(container, command, false)
		if err != nil {
			return err
		}
		if !res.Succeeded() {
			return fmt.Errorf("command exited with code %d", res.ExitCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(declares(execCmd, composeDecl))
}
