package apitest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// maxHistoryEntries caps the history file; oldest entries are dropped first.
const maxHistoryEntries = 100

// HistoryEntry is one recorded request/response summary.
type HistoryEntry struct {
	Time       string `json:"time"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	DurationMS int64  `json:"durationMs"`
}

// HistoryPath returns the history file location under the XDG data dir.
func HistoryPath() string {
	return filepath.Join(xdg.DataHome, "devkit", "history.json")
}

// LoadHistory reads recorded entries, newest last. A missing file yields nil.
func LoadHistory(path string) ([]HistoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt history file %s: %w", path, err)
	}
	return entries, nil
}

// AppendHistory records an entry, trimming to the newest maxHistoryEntries.
func AppendHistory(path string, entry HistoryEntry) error {
	entries, err := LoadHistory(path)
	if err != nil {
		// A corrupt log should not block recording; start fresh.
		entries = nil
	}
	entries = append(entries, entry)
	if len(entries) > maxHistoryEntries {
		entries = entries[len(entries)-maxHistoryEntries:]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ClearHistory removes the history file. Missing file is not an error.
func ClearHistory(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Record builds a history entry from a completed request.
func Record(r *Request, resp *Response) HistoryEntry {
	return HistoryEntry{
		Time:       time.Now().Format(time.RFC3339),
		Method:     r.Method,
		URL:        r.URL,
		StatusCode: resp.StatusCode,
		DurationMS: resp.Duration.Milliseconds(),
	}
}
