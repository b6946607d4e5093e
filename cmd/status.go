package cmd

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"setup-magento/internal/docker"
	"setup-magento/internal/logger"
	"setup-magento/internal/prereq"
)

// statusCmd prints the prerequisite registry and per-container liveness.
// It declares no prerequisites on purpose: status must work on a machine
// where nothing is installed yet, that is the situation it reports on.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show prerequisite and container status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := getRegistry()

		logger.Info("[INFO] Binaries:\n")
		printPrereqs(reg.Binaries())
		logger.Info("[INFO] Services:\n")
		printPrereqs(reg.Services())

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		compose := newCompose(cfg)

		logger.Info("[INFO] Containers:\n")
		for _, svc := range cfg.Services {
			up, err := compose.IsUp(svc)
			var notDefined *docker.NotDefinedError
			if errors.As(err, &notDefined) {
				logger.Warn("[WARN] %s\n", notDefined.Error())
				return nil
			}
			if err != nil {
				return err
			}
			if up {
				logger.Info("  %-15s up\n", svc)
			} else {
				logger.Warn("  %-15s down\n", svc)
			}
		}
		return nil
	},
}

func printPrereqs(entries map[string]prereq.Prerequisite) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := entries[name]
		tag := "optional"
		if p.Mandatory {
			tag = "mandatory"
		}
		if p.Status {
			logger.Info("  %-15s ok (%s)\n", p.Name, tag)
		} else {
			logger.Warn("  %-15s missing (%s)\n", p.Name, tag)
		}
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
