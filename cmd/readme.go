package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devkit-cli/devkit/internal/prompt"
	"github.com/devkit-cli/devkit/internal/scaffold"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	readmeName    string
	readmeDesc    string
	readmeLicense string
	readmeAuthor  string
	readmeOutput  string
	readmeForce   bool
	readmeMinimal bool
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Generate a README.md scaffold",
	Long: `Generates a README.md with the usual sections filled in.

Run without flags for an interactive walkthrough, or pre-fill:
  devkit readme --name myproj --description "Does things" --license MIT`,
	GroupID: "compose",
	RunE:    runReadme,
}

func init() {
	readmeCmd.Flags().StringVar(&readmeName, "name", "", "Project name")
	readmeCmd.Flags().StringVar(&readmeDesc, "description", "", "One-line project description")
	readmeCmd.Flags().StringVar(&readmeLicense, "license", "", "License identifier (MIT, Apache-2.0, ...)")
	readmeCmd.Flags().StringVar(&readmeAuthor, "author", "", "Author name for the license line")
	readmeCmd.Flags().StringVarP(&readmeOutput, "output", "o", "README.md", "Output file")
	readmeCmd.Flags().BoolVar(&readmeForce, "force", false, "Overwrite an existing file")
	readmeCmd.Flags().BoolVar(&readmeMinimal, "minimal", false, "Skip the install/usage/contributing sections")
	rootCmd.AddCommand(readmeCmd)
}

func runReadme(cmd *cobra.Command, args []string) error {
	data := scaffold.Data{
		Name:        readmeName,
		Description: readmeDesc,
		License:     readmeLicense,
		Author:      readmeAuthor,
	}
	interactive := data.Name == ""

	if interactive {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if data.Name, err = prompt.ReadDefault("Project name", filepath.Base(cwd)); err != nil {
			return err
		}
		if data.Description, err = prompt.ReadLine("Description"); err != nil {
			return err
		}
		if data.License == "" {
			if data.License, err = prompt.Select("License", scaffold.Licenses); err != nil {
				return err
			}
		}
		if data.License != "" && data.License != "none" && data.Author == "" {
			if data.Author, err = prompt.ReadLine("Author (blank to omit)"); err != nil {
				return err
			}
		}
	}

	if !readmeMinimal {
		data.WithInstall = true
		data.WithUsage = true
		data.WithContributing = true
		data.InstallCmd = "go install " + data.Name + "@latest"
		data.UsageExample = data.Name + " --help"

		if interactive {
			sections, err := prompt.SelectMulti("Sections to include", []string{
				"install - installation instructions",
				"usage - a usage example",
				"contributing - contribution guidelines",
			})
			if err != nil {
				return err
			}
			data.WithInstall, data.WithUsage, data.WithContributing = false, false, false
			for _, s := range sections {
				switch s {
				case "install - installation instructions":
					data.WithInstall = true
				case "usage - a usage example":
					data.WithUsage = true
				case "contributing - contribution guidelines":
					data.WithContributing = true
				}
			}
			if data.WithInstall {
				if data.InstallCmd, err = prompt.ReadDefault("Install command", data.InstallCmd); err != nil {
					return err
				}
			}
			if data.WithUsage {
				if data.UsageExample, err = prompt.ReadDefault("Usage example", data.UsageExample); err != nil {
					return err
				}
			}
		}
	}

	if err := scaffold.Write(readmeOutput, data, readmeForce); err != nil {
		return err
	}
	color.Green("✓ Wrote %s", readmeOutput)
	fmt.Fprintln(os.Stderr, "  Review the generated sections before publishing.")
	return nil
}
