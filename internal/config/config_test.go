package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing config, got error: %v", err)
	}
	if cfg.Timezone != "Local" {
		t.Errorf("expected default timezone Local, got %q", cfg.Timezone)
	}
	if !strings.HasSuffix(cfg.StoragePath, "tally.db") {
		t.Errorf("expected default sqlite path, got %q", cfg.StoragePath)
	}
	if cfg.Debug {
		t.Error("expected debug off by default")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage_path: /tmp/habits.json\ntimezone: America/New_York\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.StoragePath != "/tmp/habits.json" {
		t.Errorf("unexpected storage path %q", cfg.StoragePath)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("unexpected timezone %q", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage_path: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
