package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"setup-magento/internal/logger"
	"setup-magento/internal/prereq"
)

// composeDecl is the declaration shared by every verb that drives compose.
var composeDecl = prereq.Declaration{
	Binaries: []string{"docker", "docker-compose"},
	Services: []string{"docker"},
}

// startCmd brings the environment up detached.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the environment containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if res := newCompose(cfg).Up(); !res.Succeeded() {
			return fmt.Errorf("failed to start the environment (code %d)", res.ExitCode)
		}
		logger.Info("[INFO] Environment started.\n")
		return nil
	},
}

// stopCmd stops the containers without removing them.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the environment containers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if res := newCompose(cfg).Stop(); !res.Succeeded() {
			return fmt.Errorf("failed to stop the environment (code %d)", res.ExitCode)
		}
		logger.Info("[INFO] Environment stopped.\n")
		return nil
	},
}

// restartCmd restarts one container, or all of them without an argument.
// Restart works on up and down containers alike, so no liveness check here.
var restartCmd = &cobra.Command{
	Use:   "restart [container]",
	Short: "Restart a container (or the whole environment)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		container := ""
		if len(args) == 1 {
			container = args[0]
		}
		if !newCompose(cfg).Restart(container) {
			if container == "" {
				return fmt.Errorf("restart failed")
			}
			return fmt.Errorf("restart of container %s failed", container)
		}
		logger.Info("[INFO] Restarted.\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(declares(startCmd, composeDecl))
	rootCmd.AddCommand(declares(stopCmd, composeDecl))
	rootCmd.AddCommand(declares(restartCmd, composeDecl))
}
