// Package cmd contains the cobra command tree for devkit.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var cfgVerbose bool // --verbose flag (global)

var rootCmd = &cobra.Command{
	Use:   "devkit",
	Short: "Everyday developer-workflow utilities",
	Long: `devkit — small utilities for everyday development workflows.

Compose conventional commit messages, scaffold README files, edit .env
files, clean project junk, and test HTTP endpoints from one binary.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddGroup(
		&cobra.Group{ID: "compose", Title: "Composition commands:"},
		&cobra.Group{ID: "files", Title: "File commands:"},
		&cobra.Group{ID: "network", Title: "Network commands:"},
	)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
