package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/devkit-cli/devkit/internal/config"
	"github.com/devkit-cli/devkit/internal/junk"
	"github.com/devkit-cli/devkit/internal/prompt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cleanDir          string
	cleanDryRun       bool
	cleanForce        bool
	cleanPatternsFile string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Find and delete project junk files",
	Long: `Scans a project tree for disposable files (.DS_Store, *.log, *.tmp,
node_modules, ...) and deletes them after confirmation.

The pattern list can be extended in the devkit config file or with
--patterns-file (one glob per line, # comments).`,
	GroupID: "files",
	RunE:    runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanDir, "dir", "d", ".", "Directory to scan")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "List matches without deleting")
	cleanCmd.Flags().BoolVar(&cleanForce, "force", false, "Skip the confirmation prompt")
	cleanCmd.Flags().StringVar(&cleanPatternsFile, "patterns-file", "", "Extra glob patterns, one per line")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := cfg.Clean.Patterns
	if cleanPatternsFile != "" {
		extra, err := junk.LoadPatterns(cleanPatternsFile)
		if err != nil {
			return fmt.Errorf("read patterns file: %w", err)
		}
		patterns = append(patterns, extra...)
	}

	root, err := filepath.Abs(cleanDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("directory %s not found", cleanDir)
	}

	log.Debug("scanning for junk", "root", root, "patterns", len(patterns), "dirs", len(cfg.Clean.Dirs))
	matches, err := junk.Scan(root, patterns, cfg.Clean.Dirs)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		color.Green("✓ Nothing to clean in %s", cleanDir)
		return nil
	}

	fmt.Printf("Found %d junk item(s) in %s:\n\n", len(matches), cleanDir)
	for _, m := range matches {
		rel, rerr := filepath.Rel(root, m.Path)
		if rerr != nil {
			rel = m.Path
		}
		marker := ""
		if m.IsDir {
			marker = string(os.PathSeparator)
		}
		fmt.Printf("  %-50s %10s\n", rel+marker, junk.HumanSize(m.Size))
	}
	fmt.Printf("\nTotal: %s\n", junk.HumanSize(junk.TotalSize(matches)))

	if cleanDryRun {
		fmt.Println("\nDry run — nothing deleted.")
		return nil
	}

	if !cleanForce {
		if !prompt.Confirm("\nDelete all of the above?") {
			fmt.Println("Clean cancelled.")
			return nil
		}
	}

	freed, failed := junk.Remove(matches)
	for _, path := range failed {
		color.Yellow("⚠ Could not remove %s", path)
	}
	color.Green("✓ Freed %s", junk.HumanSize(freed))
	if len(failed) > 0 {
		return fmt.Errorf("%d item(s) could not be removed", len(failed))
	}
	return nil
}
