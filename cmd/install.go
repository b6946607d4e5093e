package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"setup-magento/internal/config"
	"setup-magento/internal/docker"
	"setup-magento/internal/logger"
	"setup-magento/internal/prereq"
	"setup-magento/internal/project"
	"setup-magento/internal/runner"
	"setup-magento/internal/state"
)

// force regenerates project files even when they already exist on disk.
var force bool

// The sync-wait loop: a flush that hits its deadline means "still syncing",
// not failure, so it retries instead of aborting the install.
const (
	syncAttempts     = 10
	syncFlushTimeout = 120 * time.Second
)

// installCmd performs the end-to-end environment install. Steps already
// recorded in the state file are skipped, so a failed install can simply be
// re-run. Side effects of completed steps are never rolled back.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the full environment: scaffold, build, start, create project, import database",
	Args:  cobra.NoArgs,
	RunE:  runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&force, "force", false, "Regenerate project files even if they exist")
	rootCmd.AddCommand(declares(installCmd, prereq.Declaration{
		Binaries: []string{"docker", "docker-compose", "composer"},
		Services: []string{"docker"},
	}))
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := state.Load(statePath)

	if !st.Scaffolded || force {
		written, err := project.Scaffold(".", cfg, force)
		if err != nil {
			return err
		}
		for _, path := range written {
			logger.Info("[INFO] Wrote %s\n", path)
		}
		st.Scaffolded = true
		state.Save(statePath, st)
	}

	compose := newCompose(cfg)

	if !st.Built {
		logger.Info("[INFO] Building containers for %s...\n", cfg.Project)
		if res := compose.Build(); !res.Succeeded() {
			return fmt.Errorf("container build failed with code %d", res.ExitCode)
		}
		st.Built = true
		state.Save(statePath, st)
	}

	logger.Info("[INFO] Starting the environment...\n")
	if res := compose.Up(); !res.Succeeded() {
		return fmt.Errorf("failed to start the environment (code %d)", res.ExitCode)
	}

	if err := waitForSync(cfg); err != nil {
		return err
	}

	if !st.ProjectCreated {
		logger.Info("[INFO] Creating Magento %s project, this takes a while...\n", cfg.Magento)
		create := fmt.Sprintf(
			"composer create-project --repository-url=https://repo.magento.com/ magento/project-community-edition=%s .",
			cfg.Magento,
		)
		res, err := compose.Exec(docker.ContainerPHP, create, false)
		if err != nil {
			return err
		}
		if !res.Succeeded() {
			return fmt.Errorf("composer create-project failed with code %d", res.ExitCode)
		}
		st.ProjectCreated = true
		st.MagentoVersion = cfg.Magento
		state.Save(statePath, st)
	}

	if cfg.Database.Dump != "" && !st.DumpImported {
		logger.Info("[INFO] Importing database dump %s...\n", cfg.Database.Dump)
		if err := importDump(compose, cfg, cfg.Database.Dump); err != nil {
			return err
		}
		st.DumpImported = true
		state.Save(statePath, st)
	}

	logger.Info("[INFO] Environment ready at http://%s\n", cfg.Domain)
	return nil
}

// waitForSync blocks until the file-sync tool reports a settled state.
// A flush cut off by its deadline is the recognized "still working" signal
// and triggers another attempt; any other failure is hard.
func waitForSync(cfg config.Config) error {
	if cfg.SyncTool != "mutagen" {
		return nil
	}
	run := runner.New()
	for attempt := 1; attempt <= syncAttempts; attempt++ {
		res := run.Run([]string{"mutagen", "project", "flush"}, runner.Options{
			Timeout: syncFlushTimeout,
			Capture: true,
		})
		if res.Succeeded() {
			return nil
		}
		if res.TimedOut() {
			logger.Warn("[WARN] Files are still syncing (attempt %d/%d)...\n", attempt, syncAttempts)
			continue
		}
		return fmt.Errorf("file sync failed: %s", strings.TrimSpace(res.Stderr))
	}
	return fmt.Errorf("file sync did not settle after %d attempts", syncAttempts)
}
