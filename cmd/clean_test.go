package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func resetCleanFlags(t *testing.T) {
	t.Helper()
	origDir, origDryRun := cleanDir, cleanDryRun
	origForce, origPatterns := cleanForce, cleanPatternsFile
	t.Cleanup(func() {
		cleanDir, cleanDryRun = origDir, origDryRun
		cleanForce, cleanPatternsFile = origForce, origPatterns
	})
}

func TestRunClean_DryRunKeepsFiles(t *testing.T) {
	resetCleanFlags(t)
	dir := t.TempDir()
	target := filepath.Join(dir, ".DS_Store")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cleanDir = dir
	cleanDryRun = true
	if err := runClean(cleanCmd, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Error("dry run deleted a file")
	}
}

func TestRunClean_ForceDeletes(t *testing.T) {
	resetCleanFlags(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "debug.log")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cleanDir = dir
	cleanForce = true
	if err := runClean(cleanCmd, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("junk file survived --force clean")
	}
}

func TestRunClean_MissingDir(t *testing.T) {
	resetCleanFlags(t)
	cleanDir = filepath.Join(t.TempDir(), "nope")
	if err := runClean(cleanCmd, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRunClean_NothingToClean(t *testing.T) {
	resetCleanFlags(t)
	cleanDir = t.TempDir()
	if err := runClean(cleanCmd, nil); err != nil {
		t.Fatal(err)
	}
}
