package state

import (
	"encoding/json"                 // For JSON encoding and decoding of the state file
	"os"                            // For file system operations like reading and writing files
	"setup-magento/internal/logger" // Custom logger package for logging errors and debug info
)

// State records which install steps have already been applied, enabling
// idempotent re-runs: a second `install` only performs what is still missing.
type State struct {
	Scaffolded     bool   `json:"scaffolded"`      // project files written
	Built          bool   `json:"built"`           // compose images built
	ProjectCreated bool   `json:"project_created"` // composer create-project completed in the php container
	DumpImported   bool   `json:"dump_imported"`   // database dump streamed into mysql
	MagentoVersion string `json:"magento_version"` // version the project was created with
}

// Load reads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be read, it returns a new empty State
// so a fresh install starts from the beginning.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{}
	}

	var st State
	_ = json.Unmarshal(file, &st)
	return &st
}

// Save writes the given State struct to a JSON file at the given path.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated: a lost
// state file only costs redundant work on the next run.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
