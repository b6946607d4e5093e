package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Database holds the connection settings for the mysql container plus the
// optional SQL dump the install imports.
type Database struct {
	Name         string `yaml:"name"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	RootPassword string `yaml:"root_password"`
	Dump         string `yaml:"dump"` // path to a .sql/.sql.gz/.sql.bz2/.sql.xz/.sql.7z/.zip dump, empty to skip import
}

// Config is the per-project configuration read from setup-magento.yaml.
type Config struct {
	Project  string   `yaml:"project"`  // compose project name
	Domain   string   `yaml:"domain"`   // local domain served by nginx
	Magento  string   `yaml:"magento"`  // Magento version for composer create-project
	PHP      string   `yaml:"php"`      // PHP version baked into the php image
	Services []string `yaml:"services"` // compose services making up the environment
	Database Database `yaml:"database"`
	SyncTool string   `yaml:"sync_tool"` // "mutagen" or empty for bind mounts
}

// Default returns the configuration used when no setup-magento.yaml exists,
// a stock single-store environment.
func Default() Config {
	return Config{
		Project:  "magento",
		Domain:   "magento.local",
		Magento:  "2.4.7",
		PHP:      "8.2",
		Services: []string{"php", "nginx", "mysql", "redis", "elasticsearch"},
		Database: Database{
			Name:         "magento",
			User:         "magento",
			Password:     "magento",
			RootPassword: "root",
		},
	}
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults serve read-only verbs (status, shell) that must work before any
// project file exists. A file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Project == "" {
		cfg.Project = Default().Project
	}
	return cfg, nil
}
