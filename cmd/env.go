package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/devkit-cli/devkit/internal/envfile"
	"github.com/devkit-cli/devkit/internal/secrets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const valuePreviewLen = 50

var (
	envFileFlag string
	envProd     bool
	envDev      bool
	envGenerate bool
	envGenLen   int
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Edit .env files without losing comments or ordering",
	Long: `Reads and rewrites .env files in the current directory.

Comments, blank lines, and line order are preserved on every write;
only the line you change is touched and new keys are appended at the end.

Target .env by default, or a specific file with --file, --prod, or --dev.`,
	GroupID: "files",
}

var envSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Add or update a key",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEnvSet,
}

var envGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a key's raw value",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvGet,
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keys with value previews",
	Args:  cobra.NoArgs,
	RunE:  runEnvList,
}

var envDeleteCmd = &cobra.Command{
	Use:     "delete KEY",
	Aliases: []string{"rm"},
	Short:   "Remove a key",
	Args:    cobra.ExactArgs(1),
	RunE:    runEnvDelete,
}

var envUseCmd = &cobra.Command{
	Use:   "use PROFILE",
	Short: "Copy .env.PROFILE over .env",
	Long: `Switches the active .env by copying a profile file over it.

'prod' and 'dev' are shorthand for 'production' and 'development':
  devkit env use prod    # copies .env.production to .env`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvUse,
}

func init() {
	envCmd.PersistentFlags().StringVar(&envFileFlag, "file", ".env", "Env file to edit")
	envCmd.PersistentFlags().BoolVar(&envProd, "prod", false, "Edit .env.production")
	envCmd.PersistentFlags().BoolVar(&envDev, "dev", false, "Edit .env.development")

	envSetCmd.Flags().BoolVar(&envGenerate, "generate", false, "Generate a random value instead of passing one")
	envSetCmd.Flags().IntVar(&envGenLen, "length", 32, "Length of the generated value")

	envCmd.AddCommand(envSetCmd, envGetCmd, envListCmd, envDeleteCmd, envUseCmd)
	rootCmd.AddCommand(envCmd)
}

// envTarget resolves which file the env subcommands operate on. The bool
// reports whether a profile flag picked it (those create the file on demand).
func envTarget() (string, bool, error) {
	if envProd && envDev {
		return "", false, fmt.Errorf("--prod and --dev are mutually exclusive")
	}
	if envProd {
		return ".env.production", true, nil
	}
	if envDev {
		return ".env.development", true, nil
	}
	return envFileFlag, false, nil
}

// requireEnvFile checks the target exists. Profile-selected files are created
// empty instead, so a later "key not found" refers to a real file.
func requireEnvFile(dir, name string, createIfMissing bool) error {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if !createIfMissing {
			return fmt.Errorf("env file %s not found", name)
		}
		log.Debug("creating empty profile file", "file", name)
		if werr := os.WriteFile(path, nil, 0600); werr != nil {
			return werr
		}
	}
	return nil
}

func runEnvSet(cmd *cobra.Command, args []string) error {
	name, _, err := envTarget()
	if err != nil {
		return err
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2 && envGenerate:
		return fmt.Errorf("pass a value or --generate, not both")
	case len(args) == 2:
		value = args[1]
	case envGenerate:
		if value, err = secrets.Token(envGenLen); err != nil {
			return err
		}
	default:
		return fmt.Errorf("missing value for %s (or use --generate)", key)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	added, err := envSet(cwd, name, key, value)
	if err != nil {
		return err
	}

	if added {
		color.Green("✓ Added %s to %s", key, name)
	} else {
		color.Green("✓ Updated %s in %s", key, name)
	}
	return nil
}

func runEnvGet(cmd *cobra.Command, args []string) error {
	name, fromProfile, err := envTarget()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	value, err := envGet(cwd, name, args[0], fromProfile)
	if err != nil {
		return err
	}
	// Raw value only, so shells can capture it
	fmt.Println(value)
	return nil
}

func runEnvList(cmd *cobra.Command, args []string) error {
	name, fromProfile, err := envTarget()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	entries, err := envList(cwd, name, fromProfile)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("%s is empty\n", name)
		return nil
	}

	keyColor := color.New(color.FgCyan)
	for _, e := range entries {
		fmt.Printf("%s=%s\n", keyColor.Sprint(e.Key), previewValue(e.Value))
	}
	return nil
}

func runEnvDelete(cmd *cobra.Command, args []string) error {
	name, fromProfile, err := envTarget()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	if err := envDelete(cwd, name, args[0], fromProfile); err != nil {
		return err
	}
	color.Green("✓ Deleted %s from %s", args[0], name)
	return nil
}

func runEnvUse(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	src, err := envUse(cwd, args[0])
	if err != nil {
		return err
	}
	color.Green("✓ Switched .env to %s", src)
	return nil
}

// envSet applies one insert-or-update to the named env file under dir.
// A missing file is treated as an empty store.
func envSet(dir, name, key, value string) (added bool, err error) {
	if err := envfile.ValidateKey(key); err != nil {
		return false, err
	}
	store, err := envfile.Load(dir, name)
	if err != nil {
		return false, err
	}
	log.Debug("loaded env file", "file", name, "entries", store.Len())

	added = store.Set(key, value)
	return added, store.Save(dir, name)
}

func envGet(dir, name, key string, createIfMissing bool) (string, error) {
	if err := requireEnvFile(dir, name, createIfMissing); err != nil {
		return "", err
	}
	store, err := envfile.Load(dir, name)
	if err != nil {
		return "", err
	}
	value, ok := store.Get(key)
	if !ok {
		return "", fmt.Errorf("key %s not found in %s", key, name)
	}
	return value, nil
}

func envList(dir, name string, createIfMissing bool) ([]envfile.Entry, error) {
	if err := requireEnvFile(dir, name, createIfMissing); err != nil {
		return nil, err
	}
	store, err := envfile.Load(dir, name)
	if err != nil {
		return nil, err
	}
	return store.Entries(), nil
}

func envDelete(dir, name, key string, createIfMissing bool) error {
	if err := requireEnvFile(dir, name, createIfMissing); err != nil {
		return err
	}
	store, err := envfile.Load(dir, name)
	if err != nil {
		return err
	}
	if !store.Delete(key) {
		return fmt.Errorf("key %s not found in %s", key, name)
	}
	return store.Save(dir, name)
}

// envUse copies .env.PROFILE over .env and returns the source file name.
func envUse(dir, profile string) (string, error) {
	switch profile {
	case "prod":
		profile = "production"
	case "dev":
		profile = "development"
	}

	src := ".env." + profile
	data, err := os.ReadFile(filepath.Join(dir, src))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("profile file %s not found", src)
		}
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), data, 0600); err != nil {
		return "", err
	}
	return src, nil
}

// previewValue truncates long values for the list view.
func previewValue(value string) string {
	runes := []rune(value)
	if len(runes) <= valuePreviewLen {
		return value
	}
	return string(runes[:valuePreviewLen]) + "..."
}
