// Package backup persists the previous values of edited fields to a
// timestamped Markdown file before a destructive config rewrite.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	filePrefix  = "launch_options"
	title       = "Launch Options Backup"
	idHeader    = "App ID"
	valueHeader = "Previous Launch Options"
)

// Record is one edited field's prior state. HadPrevious is false when the
// field did not exist before the edit, in which case there is nothing to
// back up.
type Record struct {
	ID          string
	Previous    string
	HadPrevious bool
}

// Write renders records as a Markdown table and writes them to a new file
// in dir named <prefix>_<YYYYMMDDHHMMSS>.md. Records without a prior value
// are filtered out; every remaining record appears as exactly one table
// row. Returns the path of the file written.
func Write(dir string, records []Record, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s.md", filePrefix, now.Format("20060102150405"))
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "| %s | %s |\n", idHeader, valueHeader)
	b.WriteString("|---|---|\n")
	for _, rec := range records {
		if !rec.HadPrevious {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", rec.ID, escapeCell(rec.Previous))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// escapeCell keeps pipe characters in values from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
