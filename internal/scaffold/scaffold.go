// Package scaffold renders README files from an embedded template.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrExists is returned when the target file already exists and force is off.
var ErrExists = errors.New("file already exists")

// Data fills the README template.
type Data struct {
	Name             string
	Description      string
	InstallCmd       string
	UsageExample     string
	License          string
	Author           string
	Year             int
	WithInstall      bool
	WithUsage        bool
	WithContributing bool
}

// Licenses offered by the generator prompt.
var Licenses = []string{"MIT", "Apache-2.0", "BSD-3-Clause", "GPL-3.0", "Unlicense", "none"}

// Render produces the README content for the given data.
func Render(d Data) (string, error) {
	if d.Name == "" {
		return "", fmt.Errorf("project name is required")
	}
	if d.Year == 0 {
		d.Year = time.Now().Year()
	}
	if d.License == "none" {
		d.License = ""
	}

	tmpl, err := template.ParseFS(templateFS, "templates/readme.md.tmpl")
	if err != nil {
		return "", fmt.Errorf("embedded template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write renders the README and writes it to path. Refuses to overwrite an
// existing file unless force is set.
func Write(path string, d Data, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
		}
	}
	content, err := Render(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
