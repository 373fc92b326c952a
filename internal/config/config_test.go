package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("ASANA_TOKEN", "secret")
	t.Setenv("ASANA_PROJECT_ID", "12345")
	t.Setenv("ASANA_WORKSPACE_ID", "67890")
	t.Setenv("ASANA_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Token != "secret" {
		t.Errorf("Token = %q, want secret", cfg.Token)
	}
	if cfg.ProjectID != "12345" {
		t.Errorf("ProjectID = %q, want 12345", cfg.ProjectID)
	}
	if cfg.WorkspaceID != "67890" {
		t.Errorf("WorkspaceID = %q, want 67890", cfg.WorkspaceID)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("ASANA_TOKEN", "")
	t.Setenv("ASANA_PROJECT_ID", "12345")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without a token, want error")
	}
	if !strings.Contains(err.Error(), "ASANA_TOKEN") {
		t.Errorf("error %q does not name the missing variable", err)
	}
	if !strings.Contains(err.Error(), "app.asana.com") {
		t.Errorf("error %q does not include setup hints", err)
	}
}

func TestLoadMissingProject(t *testing.T) {
	t.Setenv("ASANA_TOKEN", "secret")
	t.Setenv("ASANA_PROJECT_ID", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without a project, want error")
	}
	if !strings.Contains(err.Error(), "ASANA_PROJECT_ID") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}
