// Package config loads the Asana connection settings from a .env file
// and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything needed to talk to the Asana API.
type Config struct {
	Token       string
	ProjectID   string
	WorkspaceID string
	BaseURL     string // empty means the production endpoint
}

// Load reads .env from the working directory when present, then the
// environment. ASANA_TOKEN and ASANA_PROJECT_ID are required.
func Load() (*Config, error) {
	// A missing .env is fine; the variables may come from the shell.
	_ = godotenv.Load()

	cfg := &Config{
		Token:       os.Getenv("ASANA_TOKEN"),
		ProjectID:   os.Getenv("ASANA_PROJECT_ID"),
		WorkspaceID: os.Getenv("ASANA_WORKSPACE_ID"),
		BaseURL:     os.Getenv("ASANA_BASE_URL"),
	}

	if cfg.Token == "" {
		return nil, missingVarError("ASANA_TOKEN")
	}
	if cfg.ProjectID == "" {
		return nil, missingVarError("ASANA_PROJECT_ID")
	}
	return cfg, nil
}

func missingVarError(name string) error {
	return fmt.Errorf(`%s is not set.

Set up your environment:
  1. Create a .env file in the working directory (or export the variables)
  2. Add ASANA_TOKEN and ASANA_PROJECT_ID
  3. Get a personal access token from https://app.asana.com/0/my-apps`, name)
}
