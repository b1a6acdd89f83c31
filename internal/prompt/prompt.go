// Package prompt provides simple interactive prompts for terminal input.
//
// All prompts write to stderr so that command output on stdout stays clean
// for shell capture. Cancelled input (EOF / closed stdin) is reported as
// ErrAborted so callers can distinguish "user backed out" from bad input.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels input (EOF on stdin).
var ErrAborted = errors.New("aborted by user")

// scanLine reads a single line from stdin byte-by-byte with no buffering.
// This avoids any shared state that could be corrupted by term.ReadPassword
// reading from the raw file descriptor.
func scanLine() (string, error) {
	var buf []byte
	b := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(b)
		if err != nil || n == 0 {
			if len(buf) > 0 {
				return strings.TrimSpace(string(buf)), nil
			}
			return "", ErrAborted
		}
		if b[0] == '\n' {
			return strings.TrimSpace(string(buf)), nil
		}
		if b[0] != '\r' {
			buf = append(buf, b[0])
		}
	}
}

// ReadLine prompts for a single line of text input.
func ReadLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	return scanLine()
}

// ReadRequired prompts until the user enters a non-empty line.
func ReadRequired(label string) (string, error) {
	for {
		line, err := ReadLine(label)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(os.Stderr, "  A value is required.")
	}
}

// ReadDefault prompts for a line, returning def when the user presses Enter.
func ReadDefault(label, def string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s [%s]: ", label, def)
	line, err := scanLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question and returns true for yes.
// Aborted input counts as no.
func Confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s (yes/no): ", question)
	answer, err := scanLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y"
}

// Select displays a numbered list and lets the user pick one item.
// The user can enter a number, or type text that is matched case-insensitively
// against the first word of each item (e.g. "feat" matches "feat - a new feature").
func Select(label string, items []string) (string, error) {
	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt == 0 {
			printMenu(label, items)
		}
		fmt.Fprint(os.Stderr, "Enter choice: ")
		input, err := scanLine()
		if err != nil {
			return "", err
		}
		if input == "" {
			fmt.Fprintln(os.Stderr, "  Invalid choice, try again.")
			printMenu(label, items)
			continue
		}

		// Try numeric selection first.
		if idx, err := strconv.Atoi(input); err == nil {
			if idx >= 1 && idx <= len(items) {
				return items[idx-1], nil
			}
			fmt.Fprintln(os.Stderr, "  Invalid choice, try again.")
			printMenu(label, items)
			continue
		}

		// Match against the first word of each item (case-insensitive).
		inputLower := strings.ToLower(input)
		var match string
		matches := 0
		for _, item := range items {
			firstWord := strings.ToLower(strings.SplitN(item, " ", 2)[0])
			if firstWord == inputLower {
				match = item
				matches++
			}
		}
		if matches == 1 {
			return match, nil
		}

		fmt.Fprintln(os.Stderr, "  Invalid choice, try again.")
		printMenu(label, items)
	}
	return "", fmt.Errorf("no valid selection made")
}

// SelectMulti displays a numbered list and lets the user pick items.
// Accepts "all" or comma-separated indices (1-based). Returns selected items.
func SelectMulti(label string, items []string) ([]string, error) {
	fmt.Fprintf(os.Stderr, "%s:\n", label)
	for i, item := range items {
		fmt.Fprintf(os.Stderr, "  [%d] %s\n", i+1, item)
	}
	fmt.Fprint(os.Stderr, "\nEnter numbers (comma-separated, e.g. 1,3,5) or 'all': ")
	input, err := scanLine()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(input, "all") {
		return items, nil
	}

	var selected []string
	for _, part := range strings.Split(input, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 1 || idx > len(items) {
			continue
		}
		selected = append(selected, items[idx-1])
	}
	return selected, nil
}

func printMenu(label string, items []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", label)
	for i, item := range items {
		fmt.Fprintf(os.Stderr, "  [%d] %s\n", i+1, item)
	}
}

// ReadEditor collects multi-line text, terminated by a line containing only
// '.' or by EOF after at least one line. Returns the joined text.
func ReadEditor(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s (end with a single '.' on its own line):\n", label)
	var lines []string
	for {
		line, err := scanLine()
		if err != nil {
			if errors.Is(err, ErrAborted) && len(lines) > 0 {
				break
			}
			return "", err
		}
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ReadSecret reads input with terminal echo disabled (for tokens/passwords).
// Falls back to plain line input if stdin is not a terminal.
func ReadSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err == nil {
			return strings.TrimSpace(string(raw)), nil
		}
	}
	return scanLine()
}
