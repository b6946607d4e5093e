package main

import (
	"setup-magento/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The setup-magento project is a local Magento 2 development environment
// installer/orchestrator built on Docker Compose that:
//   - Reads a YAML configuration file describing the project: domain, Magento
//     and PHP versions, services, database credentials, and an optional SQL
//     dump to import
//   - Scaffolds the project files (.env, compose file, .gitignore)
//   - Builds and starts the containers, creates the Magento project with
//     composer inside the php container, waits for the file-sync tool to
//     settle, and imports the database dump
//   - Gates every command behind a prerequisite check: the binaries and
//     services a command declares must be present before its body runs
//   - Probes container liveness fresh before every in-container operation
//     instead of trusting the cached prerequisite snapshot
//
// Error handling strategy:
//   - Prerequisite and environment failures abort the invoked command
//     immediately with a user-facing remedy (install X, start the
//     environment); already-applied side effects are not rolled back, and the
//     state file lets a re-run pick up where the failure happened
//   - The process exits 0 on success and 1 on any error; those are the only
//     two outward-facing statuses
func main() {
	cmd.Execute()
}
