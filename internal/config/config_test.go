package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/contestsim/internal/config"
	"github.com/amonks/contestsim/internal/testsupport"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONTESTSIM_API_URL", "")
	t.Setenv("CONTESTSIM_LOG_LEVEL", "")
	t.Setenv("CONTESTSIM_USERNAME", "")
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.URL != config.DefaultAPIURL {
		t.Errorf("API.URL = %q, want default", cfg.API.URL)
	}
	if cfg.Contest.Duration.Duration != 90*time.Minute {
		t.Errorf("Contest.Duration = %v, want 90m", cfg.Contest.Duration)
	}
	if cfg.Contest.PollInterval.Duration != 15*time.Second {
		t.Errorf("Contest.PollInterval = %v, want 15s", cfg.Contest.PollInterval)
	}
	if !cfg.Identity.PersistCredential {
		t.Error("expected credential persistence on by default")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	configContent := `
[api]
url = "https://contest.example.com"
timeout = "5s"

[contest]
duration = "60m"
mode = "unsolved"
topics = ["array", "graph"]

[identity]
username = "neal_wu"
persist-credential = false
credential-ttl = "24h"
`

	if err := os.WriteFile(filepath.Join(tmpDir, config.ProjectFile), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.API.URL != "https://contest.example.com" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout.Duration != 5*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Contest.Duration.Duration != time.Hour {
		t.Errorf("Contest.Duration = %v", cfg.Contest.Duration)
	}
	if cfg.Contest.PollInterval.Duration != config.DefaultPollInterval {
		t.Errorf("expected default poll interval, got %v", cfg.Contest.PollInterval)
	}
	if cfg.Contest.Mode != "unsolved" {
		t.Errorf("Contest.Mode = %q", cfg.Contest.Mode)
	}
	if len(cfg.Contest.Topics) != 2 {
		t.Errorf("Contest.Topics = %v", cfg.Contest.Topics)
	}
	if cfg.Identity.Username != "neal_wu" {
		t.Errorf("Identity.Username = %q", cfg.Identity.Username)
	}
	if cfg.Identity.PersistCredential {
		t.Error("expected persist-credential = false")
	}
	if cfg.Identity.CredentialTTL.Duration != 24*time.Hour {
		t.Errorf("Identity.CredentialTTL = %v", cfg.Identity.CredentialTTL)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	globalDir := filepath.Join(home, ".config", "contestsim")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	global := `
[identity]
username = "global_user"

[log]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(globalDir, "config.toml"), []byte(global), 0o644); err != nil {
		t.Fatalf("write global: %v", err)
	}
	project := `
[identity]
username = "project_user"
`
	if err := os.WriteFile(filepath.Join(tmpDir, config.ProjectFile), []byte(project), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Identity.Username != "project_user" {
		t.Errorf("Identity.Username = %q, want project_user", cfg.Identity.Username)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug from global", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	t.Setenv("CONTESTSIM_API_URL", "http://localhost:9999")
	t.Setenv("CONTESTSIM_USERNAME", "env_user")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://localhost:9999" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Identity.Username != "env_user" {
		t.Errorf("Identity.Username = %q", cfg.Identity.Username)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, config.ProjectFile), []byte("[contest]\nduration = \"forever\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := config.Load(tmpDir); err == nil {
		t.Fatal("expected parse error")
	}
}
