package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Commit.Types) != len(DefaultCommitTypes) {
		t.Errorf("expected %d default commit types, got %d", len(DefaultCommitTypes), len(cfg.Commit.Types))
	}
	if len(cfg.Clean.Patterns) == 0 {
		t.Error("expected default clean patterns")
	}
}

func TestLoadFrom_PartialOverride(t *testing.T) {
	content := `commit:
  scopes: [cli, core]
clean:
  patterns: ["*.bak"]
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Commit.Scopes) != 2 {
		t.Errorf("scopes = %v", cfg.Commit.Scopes)
	}
	// Unset sections keep defaults
	if len(cfg.Commit.Types) != len(DefaultCommitTypes) {
		t.Error("commit types should fall back to defaults")
	}
	if len(cfg.Clean.Patterns) != 1 || cfg.Clean.Patterns[0] != "*.bak" {
		t.Errorf("patterns = %v", cfg.Clean.Patterns)
	}
	if len(cfg.Clean.Dirs) != len(DefaultCleanDirs) {
		t.Error("clean dirs should fall back to defaults")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("commit: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
