package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"setup-magento/internal/config"
	"setup-magento/internal/docker"
	"setup-magento/internal/dump"
	"setup-magento/internal/logger"
	"setup-magento/internal/state"
)

// dbCmd groups database operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database operations",
}

// dbImportCmd streams a (possibly compressed) SQL dump into the mysql
// container. Decompression happens on the fly; the plain SQL never lands on
// disk.
var dbImportCmd = &cobra.Command{
	Use:   "import <dump>",
	Short: "Import a SQL dump (.sql, .sql.gz, .sql.bz2, .sql.xz, .sql.7z, .zip) into mysql",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := importDump(newCompose(cfg), cfg, args[0]); err != nil {
			return err
		}
		st := state.Load(statePath)
		st.DumpImported = true
		state.Save(statePath, st)
		logger.Info("[INFO] Database imported.\n")
		return nil
	},
}

// importDump pipes the decompressed dump into mysql inside its container,
// using the executor's create-only variant so the reader can be attached as
// the process stdin before it starts.
func importDump(compose *docker.Compose, cfg config.Config, path string) error {
	r, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	mysql := fmt.Sprintf("mysql -u%s -p%s %s", cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	proc, cancel, err := compose.Create(docker.ContainerMySQL, mysql, r)
	if err != nil {
		return err
	}
	defer cancel()

	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	if err := proc.Run(); err != nil {
		return fmt.Errorf("database import failed: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(declares(dbImportCmd, composeDecl))
	rootCmd.AddCommand(dbCmd)
}
