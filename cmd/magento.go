package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"setup-magento/internal/docker"
	"setup-magento/internal/prereq"
)

// magentoCmd forwards to bin/magento inside the php container, running as the
// app user so generated files stay writable from the host.
var magentoCmd = &cobra.Command{
	Use:   "magento <args...>",
	Short: "Run bin/magento inside the php container",
	Long: `Run bin/magento inside the php container.

Flags intended for bin/magento must be separated with --, e.g.:
  setup-magento magento cache:clean
  setup-magento magento setup:upgrade -- --keep-generated`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInPHP("bin/magento " + strings.Join(args, " "))
	},
}

// composerCmd forwards to composer inside the php container.
var composerCmd = &cobra.Command{
	Use:   "composer <args...>",
	Short: "Run composer inside the php container",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInPHP("composer " + strings.Join(args, " "))
	},
}

// runInPHP executes the command in the php container and maps a non-zero
// exit onto an error for the top-level handler.
func runInPHP(command string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := newCompose(cfg).Exec(docker.ContainerPHP, command, false)
	if err != nil {
		return err
	}
	if !res.Succeeded() {
		return fmt.Errorf("command exited with code %d", res.ExitCode)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(declares(magentoCmd, composeDecl))
	rootCmd.AddCommand(declares(composerCmd, prereq.Declaration{
		Binaries: []string{"docker", "docker-compose", "composer"},
		Services: []string{"docker"},
	}))
}
