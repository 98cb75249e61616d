package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if !cfg.Scanner.UseGit {
		t.Error("useGit should default to true")
	}
	if cfg.Summarizer.Endpoint != "http://localhost:11434" {
		t.Errorf("endpoint = %q", cfg.Summarizer.Endpoint)
	}
	if cfg.Summarizer.Model != "qwen2.5-coder" {
		t.Errorf("model = %q", cfg.Summarizer.Model)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults wrong: %+v", cfg.Logging)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Scanner.Excludes = []string{"generated", "vendor"}
	cfg.Scanner.UseGit = false
	cfg.Summarizer.Model = "llama3"
	cfg.Summarizer.Enabled = true

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(loaded.Scanner.Excludes) != 2 || loaded.Scanner.Excludes[0] != "generated" {
		t.Errorf("excludes = %v", loaded.Scanner.Excludes)
	}
	if loaded.Scanner.UseGit {
		t.Error("useGit should survive as false")
	}
	if loaded.Summarizer.Model != "llama3" || !loaded.Summarizer.Enabled {
		t.Errorf("summarizer = %+v", loaded.Summarizer)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".codemap")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(root); err == nil {
		t.Error("expected an error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"json format", func(c *Config) { c.Logging.Format = "json" }, false},
		{"empty format", func(c *Config) { c.Logging.Format = "" }, false},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"bad version", func(c *Config) { c.Version = 99 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
