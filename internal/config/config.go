// Package config loads optional devkit configuration from the XDG config dir.
//
// Configuration is entirely optional: a missing file yields the built-in
// defaults. Only the fields a user sets override the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the devkit configuration file (config.yml).
type Config struct {
	Commit CommitConfig `yaml:"commit"`
	Clean  CleanConfig  `yaml:"clean"`
}

// CommitConfig customizes the conventional-commit composer.
type CommitConfig struct {
	// Types are offered in the type menu, as "name - description" entries.
	Types []string `yaml:"types"`
	// Scopes, when set, turns the free-text scope prompt into a menu.
	Scopes []string `yaml:"scopes"`
}

// CleanConfig customizes the junk-file cleaner.
type CleanConfig struct {
	// Patterns are glob patterns matched against file names.
	Patterns []string `yaml:"patterns"`
	// Dirs are directory names removed wholesale (e.g. node_modules).
	Dirs []string `yaml:"dirs"`
}

// DefaultCommitTypes is the standard Conventional Commits type menu.
var DefaultCommitTypes = []string{
	"feat - a new feature",
	"fix - a bug fix",
	"docs - documentation only changes",
	"style - formatting, missing semicolons, etc.",
	"refactor - a change that neither fixes a bug nor adds a feature",
	"perf - a change that improves performance",
	"test - adding or correcting tests",
	"build - changes to the build system or dependencies",
	"ci - changes to CI configuration",
	"chore - other changes that don't modify src or test files",
	"revert - reverts a previous commit",
}

// DefaultCleanPatterns are file-name globs the cleaner looks for.
var DefaultCleanPatterns = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	"*.log",
	"*.tmp",
	"*.swp",
	"*~",
	"npm-debug.log*",
}

// DefaultCleanDirs are directory names the cleaner offers to remove.
var DefaultCleanDirs = []string{
	"node_modules",
	"__pycache__",
	".pytest_cache",
	"dist",
	"coverage",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Commit: CommitConfig{Types: DefaultCommitTypes},
		Clean: CleanConfig{
			Patterns: DefaultCleanPatterns,
			Dirs:     DefaultCleanDirs,
		},
	}
}

// Path returns the config file location under the XDG config directory.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "devkit", "config.yml")
}

// Load reads the config file, filling unset fields from defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(user.Commit.Types) > 0 {
		cfg.Commit.Types = user.Commit.Types
	}
	if len(user.Commit.Scopes) > 0 {
		cfg.Commit.Scopes = user.Commit.Scopes
	}
	if len(user.Clean.Patterns) > 0 {
		cfg.Clean.Patterns = user.Clean.Patterns
	}
	if len(user.Clean.Dirs) > 0 {
		cfg.Clean.Dirs = user.Clean.Dirs
	}
	return cfg, nil
}
