package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/devkit-cli/devkit/internal/commitmsg"
	"github.com/devkit-cli/devkit/internal/config"
	"github.com/devkit-cli/devkit/internal/gitcli"
	"github.com/devkit-cli/devkit/internal/prompt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	commitType     string
	commitScope    string
	commitSubject  string
	commitBody     string
	commitBreaking string
	commitRefs     string
	commitCopy     bool
	commitRun      bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Compose a Conventional Commits message",
	Long: `Builds a commit message in the Conventional Commits format.

Run without flags for an interactive walkthrough, or pre-fill the answers:
  devkit commit --type fix --scope env --subject "handle empty values"

The composed message is printed; add --copy to put it on the clipboard or
--commit to run 'git commit -m' with it against the staged changes.`,
	GroupID: "compose",
	RunE:    runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitType, "type", "t", "", "Commit type (feat, fix, ...)")
	commitCmd.Flags().StringVarP(&commitScope, "scope", "s", "", "Commit scope")
	commitCmd.Flags().StringVarP(&commitSubject, "subject", "m", "", "Commit subject line")
	commitCmd.Flags().StringVar(&commitBody, "body", "", "Commit body")
	commitCmd.Flags().StringVar(&commitBreaking, "breaking", "", "BREAKING CHANGE description")
	commitCmd.Flags().StringVar(&commitRefs, "refs", "", "Issue references (comma-separated)")
	commitCmd.Flags().BoolVar(&commitCopy, "copy", false, "Copy the message to the clipboard")
	commitCmd.Flags().BoolVar(&commitRun, "commit", false, "Run 'git commit' with the message")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	msg := commitmsg.Message{
		Type:     commitType,
		Scope:    commitScope,
		Subject:  commitSubject,
		Body:     commitBody,
		Breaking: commitBreaking,
		Refs:     commitmsg.ParseRefs(commitRefs),
	}

	// Prompt for anything the flags didn't provide
	if msg.Type == "" {
		choice, err := prompt.Select("Commit type", cfg.Commit.Types)
		if err != nil {
			return err
		}
		msg.Type = commitmsg.TypeName(choice)

		if msg.Scope == "" {
			if err := promptScope(&msg, cfg); err != nil {
				return err
			}
		}
	}
	if msg.Subject == "" {
		for {
			subject, err := prompt.ReadRequired("Subject (imperative, max 72 chars)")
			if err != nil {
				return err
			}
			if len(subject) <= commitmsg.MaxSubjectLen {
				msg.Subject = subject
				break
			}
			fmt.Fprintf(os.Stderr, "  Subject is %d chars, max %d.\n", len(subject), commitmsg.MaxSubjectLen)
		}

		if msg.Body == "" && prompt.Confirm("Add a body?") {
			if msg.Body, err = prompt.ReadEditor("Body"); err != nil {
				return err
			}
		}
		if msg.Breaking == "" && prompt.Confirm("Is this a breaking change?") {
			if msg.Breaking, err = prompt.ReadRequired("Describe the breaking change"); err != nil {
				return err
			}
		}
		if len(msg.Refs) == 0 {
			refs, err := prompt.ReadLine("Issue references (blank for none)")
			if err != nil {
				return err
			}
			msg.Refs = commitmsg.ParseRefs(refs)
		}
	}

	if err := msg.Validate(); err != nil {
		return err
	}
	rendered := msg.String()

	fmt.Fprintln(os.Stderr)
	color.Cyan("─── commit message ───")
	fmt.Println(rendered)
	color.Cyan("──────────────────────")

	if commitCopy {
		if err := clipboard.WriteAll(rendered); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		color.Green("✓ Copied to clipboard")
	}

	if commitRun {
		return gitCommit(rendered)
	}
	return nil
}

func promptScope(msg *commitmsg.Message, cfg *config.Config) error {
	if len(cfg.Commit.Scopes) > 0 {
		choices := append([]string{"(none)"}, cfg.Commit.Scopes...)
		choice, err := prompt.Select("Scope", choices)
		if err != nil {
			return err
		}
		if choice != "(none)" {
			msg.Scope = choice
		}
		return nil
	}

	scope, err := prompt.ReadLine("Scope (blank for none)")
	if err != nil {
		return err
	}
	msg.Scope = scope
	return nil
}

func gitCommit(message string) error {
	if !gitcli.IsAvailable() {
		return fmt.Errorf("git is not installed or not on PATH")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	if !gitcli.IsRepo(cwd) {
		return fmt.Errorf("not inside a git repository")
	}
	if !gitcli.HasStagedChanges(cwd) {
		return fmt.Errorf("nothing staged — use 'git add' first")
	}

	log.Debug("running git commit", "dir", cwd)
	if err := gitcli.Commit(cwd, message); err != nil {
		return err
	}
	color.Green("✓ Committed")
	return nil
}
