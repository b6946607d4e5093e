package cmd

import (
	"github.com/spf13/cobra"

	"setup-magento/internal/docker"
)

// shellCmd attaches an interactive shell to a container, defaulting to the
// php container under the app user so files created in the session are not
// root-owned. The call blocks until the remote shell exits; ending the
// session is the shell's own business (exit, Ctrl-D), not this layer's.
var shellCmd = &cobra.Command{
	Use:   "shell [container]",
	Short: "Open an interactive shell inside a container (default: php)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		container := docker.ContainerPHP
		if len(args) == 1 {
			container = args[0]
		}
		user := ""
		if container == docker.ContainerPHP {
			user = docker.AppUser()
		}
		return newCompose(cfg).OpenTerminal(container, user)
	},
}

func init() {
	rootCmd.AddCommand(declares(shellCmd, composeDecl))
}
