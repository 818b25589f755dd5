package edit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veldrin/ce-autostart/internal/backup"
	"github.com/veldrin/ce-autostart/internal/vdf"
)

// Session owns one config file for the duration of an edit flow: parse,
// apply zero or more ops in memory, then commit the result back to disk
// with a backup of every overwritten value. It is passed explicitly through
// the interactive layer; there is no ambient current-tree state.
type Session struct {
	path    string
	tree    *vdf.Tree
	results []Result
}

// Open reads and parses the config file at path. Nothing is written until
// Commit; a parse failure leaves the file untouched.
func Open(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	tree, err := vdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Session{path: path, tree: tree}, nil
}

// Tree exposes the parsed tree for read-only inspection.
func (s *Session) Tree() *vdf.Tree { return s.tree }

// Path returns the config file this session was opened on.
func (s *Session) Path() string { return s.path }

// Preview reports what op would change without mutating the tree.
func (s *Session) Preview(op Op) (Result, error) {
	return Preview(s.tree, op)
}

// Apply mutates the in-memory tree and records the result for the commit
// backup. Ops skipped by the caller (declined confirmation) are simply
// never applied; earlier applied ops still commit.
func (s *Session) Apply(op Op) (Result, error) {
	res, err := Apply(s.tree, op)
	if err != nil {
		return res, err
	}
	s.results = append(s.results, res)
	return res, nil
}

// Results returns the outcomes of every applied op, in order.
func (s *Session) Results() []Result { return s.results }

// Commit writes a backup of all overwritten values to backupDir, then
// atomically replaces the config file with the serialized tree. The backup
// is written before the replace, so previous values are on disk before they
// become unrecoverable from the live file. Returns the backup file path,
// or "" when no applied op had a prior value.
func (s *Session) Commit(backupDir string) (string, error) {
	records := make([]backup.Record, 0, len(s.results))
	withPrevious := 0
	for _, res := range s.results {
		records = append(records, backup.Record{
			ID:          res.identifier(),
			Previous:    res.Previous,
			HadPrevious: res.HadPrevious,
		})
		if res.HadPrevious {
			withPrevious++
		}
	}

	backupPath := ""
	if withPrevious > 0 {
		var err error
		backupPath, err = backup.Write(backupDir, records, time.Now())
		if err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := writeFileAtomic(s.path, s.tree.Serialize()); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

// identifier names the edited entry in backup records: the innermost path
// key (the app id for launch-option edits), falling back to the field name
// for root-level edits.
func (r Result) identifier() string {
	if len(r.Path) > 0 {
		return r.Path[len(r.Path)-1]
	}
	return r.Field
}

// writeFileAtomic writes data to a temporary file in the same directory as
// path, syncs it, then renames it over path. A crash before the rename
// leaves the original intact; a crash after leaves the fully-written new
// file. No partially-written file is ever observable at path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Carry over the original file's permissions when it exists.
	if info, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("failed to set temp file mode: %w", err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
