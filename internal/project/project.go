// Package project scaffolds the on-disk files of a Magento environment:
// the .env consumed by docker-compose, a compose file describing the
// services, and a .gitignore covering the generated artifacts.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"setup-magento/internal/config"
	"setup-magento/internal/logger"
)

// Scaffold writes the project files into dir and returns the paths it
// created. Existing files are left untouched unless force is set, so re-runs
// never clobber local edits.
func Scaffold(dir string, cfg config.Config, force bool) ([]string, error) {
	files := map[string]string{
		".env":               renderEnv(cfg),
		"docker-compose.yml": renderCompose(cfg),
		".gitignore":         renderGitignore(),
	}

	var written []string
	// Deterministic order keeps output and tests stable.
	for _, name := range []string{".env", "docker-compose.yml", ".gitignore"} {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				logger.Debug("[DEBUG] Scaffold: %s exists, skipping\n", path)
				continue
			}
		}
		if err := os.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderEnv(cfg config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COMPOSE_PROJECT_NAME=%s\n", cfg.Project)
	fmt.Fprintf(&b, "MAGENTO_DOMAIN=%s\n", cfg.Domain)
	fmt.Fprintf(&b, "MAGENTO_VERSION=%s\n", cfg.Magento)
	fmt.Fprintf(&b, "PHP_VERSION=%s\n", cfg.PHP)
	fmt.Fprintf(&b, "MYSQL_DATABASE=%s\n", cfg.Database.Name)
	fmt.Fprintf(&b, "MYSQL_USER=%s\n", cfg.Database.User)
	fmt.Fprintf(&b, "MYSQL_PASSWORD=%s\n", cfg.Database.Password)
	fmt.Fprintf(&b, "MYSQL_ROOT_PASSWORD=%s\n", cfg.Database.RootPassword)
	return b.String()
}

func renderCompose(cfg config.Config) string {
	var b strings.Builder
	b.WriteString("services:\n")
	for _, svc := range cfg.Services {
		switch svc {
		case "php":
			fmt.Fprintf(&b, `  php:
    image: php:%s-fpm
    volumes:
      - ./src:/var/www/html
    environment:
      COMPOSER_MEMORY_LIMIT: "-1"
`, cfg.PHP)
		case "nginx":
			fmt.Fprintf(&b, `  nginx:
    image: nginx:stable
    ports:
      - "80:80"
      - "443:443"
    volumes:
      - ./src:/var/www/html
    depends_on:
      - php
    environment:
      VIRTUAL_HOST: %s
`, cfg.Domain)
		case "mysql":
			b.WriteString(`  mysql:
    image: mariadb:10.6
    env_file: .env
    volumes:
      - mysql-data:/var/lib/mysql
`)
		case "redis":
			b.WriteString(`  redis:
    image: redis:7
`)
		case "elasticsearch":
			b.WriteString(`  elasticsearch:
    image: elasticsearch:7.17.9
    environment:
      discovery.type: single-node
`)
		default:
			fmt.Fprintf(&b, "  %s:\n    image: %s\n", svc, svc)
		}
	}
	b.WriteString("volumes:\n  mysql-data:\n")
	return b.String()
}

func renderGitignore() string {
	return strings.Join([]string{
		".env",
		"src/",
		"state.json",
		"*.sql",
		"*.sql.gz",
		"",
	}, "\n")
}
