package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `{
	// This is a JSONC comment
	"api": {
		"base_url": "${{ .Env.TASKDECK_TEST_URL }}",
		"timeout": "5s"
	},
	"ui": {
		"due_date_sentinel": "no deadline",
		"markdown": false
	}
}`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TASKDECK_TEST_URL", "https://tasks.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL != "https://tasks.example.com" {
		t.Errorf("expected expanded base_url, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Duration() != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", cfg.API.Timeout.Duration())
	}
	if cfg.UI.DueDateSentinel != "no deadline" {
		t.Errorf("expected sentinel override, got %s", cfg.UI.DueDateSentinel)
	}
	if cfg.UI.RenderMarkdown() {
		t.Error("expected markdown disabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `{}`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL == "" {
		t.Error("expected default base_url")
	}
	if cfg.API.Timeout.Duration() != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.API.Timeout.Duration())
	}
	if cfg.UI.DueDateSentinel != "No Due Date" {
		t.Errorf("expected default sentinel, got %s", cfg.UI.DueDateSentinel)
	}
	if !cfg.UI.RenderMarkdown() {
		t.Error("expected markdown enabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatalf("missing config should yield defaults, got %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Error("expected default base_url")
	}
}

func TestLoadEnvURLDefault(t *testing.T) {
	t.Setenv("TASKDECK_API_URL", "http://10.0.0.5:8080")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("expected env default, got %s", cfg.API.BaseURL)
	}
}
