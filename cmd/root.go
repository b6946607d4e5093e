package cmd

import (
	"os"
	"sync"

	"github.com/spf13/cobra"

	"setup-magento/internal/config"
	"setup-magento/internal/docker"
	"setup-magento/internal/logger"
	"setup-magento/internal/prereq"
	"setup-magento/internal/runner"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to the project configuration YAML file.
// It's passed via the `--config` or `-c` flag.
var configPath string

// statePath is the path to the persistent state file tracking which install
// steps have already been applied.
var statePath = "state.json"

// rootCmd is the base command for the CLI tool `setup-magento`.
// Its PersistentPreRunE is the dispatcher-side middleware every subcommand
// passes through: initialize logging, then run the prerequisite gate for the
// invoked command before its body is allowed to execute.
var rootCmd = &cobra.Command{
	Use:           "setup-magento",
	Short:         "Magento 2 Docker development environment installer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug) // Set up logging (verbose if --debug is true)
		return gate(cmd)
	},
}

// prereqs is the declaration table: each registered command's prerequisite
// declaration, consumed by the gate at dispatch time. Commands absent from
// the table (help, completion) run ungated.
var prereqs = map[*cobra.Command]prereq.Declaration{}

// declares attaches a prerequisite declaration to a command at registration
// time and returns the command for chaining into AddCommand.
func declares(cmd *cobra.Command, d prereq.Declaration) *cobra.Command {
	prereqs[cmd] = d
	return cmd
}

// The prerequisite registry is built lazily on the first gated dispatch and
// cached for the process lifetime. Container liveness is never read from it;
// the docker package re-probes that fresh per operation.
var (
	registryOnce sync.Once
	registry     prereq.Source

	// newRegistry is a hook so tests can substitute a fixed snapshot.
	newRegistry = func() prereq.Source { return prereq.NewRegistry(runner.New()) }
)

func getRegistry() prereq.Source {
	registryOnce.Do(func() { registry = newRegistry() })
	return registry
}

// gate looks up the invoked command's declaration and checks it against the
// registry snapshot. Commands without declarations always pass.
func gate(cmd *cobra.Command) error {
	d, ok := prereqs[cmd]
	if !ok || d.Empty() {
		return nil
	}
	return prereq.NewGate(getRegistry()).Check(d)
}

// loadConfig reads the project configuration from the --config path.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// newCompose returns the compose handle for the configured project.
func newCompose(cfg config.Config) *docker.Compose {
	return docker.New(runner.New(), cfg.Project)
}

// Execute initializes flags and starts command execution.
// It's the entry point for the CLI when invoked by the user.
// The process exits 0 on success and 1 on any error; those are the only two
// outward-facing statuses.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "setup-magento.yaml", "Path to the project configuration file")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %s\n", err)
		os.Exit(1)
	}
}
