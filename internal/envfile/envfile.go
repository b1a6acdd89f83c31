// Package envfile parses, edits, and rewrites .env files.
//
// The file format is simple: one KEY=VALUE per line, # comments, blank lines.
// Values may be optionally quoted with single or double quotes; exactly one
// layer of matching quotes is stripped on parse. A Store keeps entries in
// first-appearance order and retains the original text so that rewrites
// preserve comments, blank lines, and line ordering.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// lineRe matches a KEY=VALUE assignment. The key runs up to the first '='
// and may not contain '=' or '#'.
var lineRe = regexp.MustCompile(`^([^=#]+?)\s*=\s*(.*)$`)

// Entry is one recognized key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Store is the in-memory representation of one .env file: an ordered
// key→value mapping plus the original raw text for format-preserving output.
type Store struct {
	values   map[string]string
	order    []string
	original string
}

// Parse builds a Store from raw .env file content. An empty string yields an
// empty store. Lines without '=' are ignored. Duplicate keys keep the value
// of the last occurrence but the position of the first.
func Parse(content string) *Store {
	s := &Store{
		values:   make(map[string]string),
		original: content,
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := splitLine(line)
		if !ok {
			continue
		}

		if _, exists := s.values[key]; !exists {
			s.order = append(s.order, key)
		}
		s.values[key] = value
	}

	return s
}

// splitLine extracts the key and unquoted value from a trimmed KEY=VALUE
// line. Returns ok=false for lines that are not assignments.
func splitLine(line string) (key, value string, ok bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}

	key = strings.TrimSpace(m[1])
	value = strings.TrimSpace(m[2])

	// Strip one layer of matching surrounding quotes
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}

// Load reads and parses the named env file under dir. A missing file yields
// an empty store, not an error.
func Load(dir, name string) (*Store, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(""), nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}

// Get returns the value for key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set inserts or updates a key. Returns true if the key was newly added.
func (s *Store) Set(key, value string) bool {
	_, exists := s.values[key]
	if !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	return !exists
}

// Delete removes a key. Returns false if the key was absent.
func (s *Store) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns all keys in first-appearance order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Entries returns all entries in first-appearance order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		entries = append(entries, Entry{Key: k, Value: s.values[k]})
	}
	return entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.values)
}

// Format serializes the store back to .env text.
//
// When the store was parsed from existing content, that content's layout is
// preserved: comments and blank lines are copied verbatim in place,
// recognized KEY=VALUE lines are re-emitted with the store's current value
// (or dropped if the key was deleted), lines without '=' are dropped, and
// keys not present in the original are appended at the end. Output ends with
// exactly one trailing newline unless there is nothing to emit at all.
func (s *Store) Format() string {
	var out []string
	emitted := make(map[string]bool)

	if s.original != "" {
		lines := strings.Split(s.original, "\n")
		// Split leaves a trailing empty element when the text ends in a
		// newline; dropping it avoids emitting a spurious blank line.
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		for _, raw := range lines {
			trimmed := strings.TrimSpace(raw)

			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				out = append(out, raw)
				continue
			}

			key, _, ok := splitLine(trimmed)
			if !ok {
				// No '=': not an assignment, dropped on rewrite
				continue
			}

			value, exists := s.values[key]
			if !exists || emitted[key] {
				// Deleted key, or a later duplicate of one already written
				continue
			}
			out = append(out, key+"="+EscapeValue(value))
			emitted[key] = true
		}
	}

	for _, key := range s.order {
		if !emitted[key] {
			out = append(out, key+"="+EscapeValue(s.values[key]))
		}
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// Save serializes the store and writes it to the named file under dir.
func (s *Store) Save(dir, name string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(s.Format()), 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EscapeValue quotes a value for serialization. Values containing a space,
// '=', or '#' are wrapped in double quotes with inner double quotes
// backslash-escaped; anything else is emitted as-is.
func EscapeValue(value string) string {
	if !strings.ContainsAny(value, " =#") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// ValidateKey rejects keys that cannot survive a KEY=VALUE line.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	if strings.ContainsAny(key, " =") {
		return fmt.Errorf("key %q must not contain spaces or '='", key)
	}
	return nil
}
