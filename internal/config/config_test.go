// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playbymail/nixdiff/internal/config"
)

func TestLoad(t *testing.T) {
	// Test non-existent file
	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := config.Load("non-existent-file.json", false)
		if err != nil {
			t.Errorf("expected no error for non-existent file, got %v", err)
		}
		if cfg == nil {
			t.Errorf("expected non-nil config")
		}
		// Should return default config
		if cfg.RefParser.Command != "nix-ref-dump" {
			t.Errorf("expected default ref parser, got %q", cfg.RefParser.Command)
		}
	})

	// Test directory instead of file
	t.Run("directory error", func(t *testing.T) {
		tmpDir := t.TempDir()
		_, err := config.Load(tmpDir, false)
		if err == nil {
			t.Errorf("expected error for directory, got nil")
		}
	})

	// Test empty config file
	t.Run("empty config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		err := os.WriteFile(configFile, []byte("{}"), 0644)
		if err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.Store != "" {
			t.Errorf("expected empty store, got %q", cfg.Store)
		}
	})

	// Test partial config loading
	t.Run("partial config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		data := `{"BasePath": "/work", "RefParser": {"Command": "ref-json", "Args": ["--stdin"]}}`
		if err := os.WriteFile(configFile, []byte(data), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg, err := config.Load(configFile, false)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if cfg.BasePath != "/work" {
			t.Errorf("expected base path %q, got %q", "/work", cfg.BasePath)
		}
		if cfg.RefParser.Command != "ref-json" {
			t.Errorf("expected ref parser %q, got %q", "ref-json", cfg.RefParser.Command)
		}
		if len(cfg.RefParser.Args) != 1 || cfg.RefParser.Args[0] != "--stdin" {
			t.Errorf("expected ref parser args [--stdin], got %v", cfg.RefParser.Args)
		}
		// untouched sections keep their defaults
		if cfg.CSTParser.Command != "rnix-dump" {
			t.Errorf("expected default cst parser, got %q", cfg.CSTParser.Command)
		}
	})

	// Test invalid JSON
	t.Run("invalid json", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configFile, []byte("{not json"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := config.Load(configFile, false); err == nil {
			t.Errorf("expected error for invalid json, got nil")
		}
	})
}
