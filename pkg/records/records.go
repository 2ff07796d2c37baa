// Package records loads and saves the politician records file.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tanfilov/democrac-server/pkg/types"
)

// ValidationError describes a record that fails structural validation.
type ValidationError struct {
	Index  int    // position in the input array
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// Load reads a JSON array of records from path.
// Returns a *ValidationError when a record has an empty name.
func Load(path string) ([]*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var recs []*types.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing records file: %w", err)
	}

	for i, rec := range recs {
		if rec == nil {
			return nil, &ValidationError{Index: i, Reason: "null entry"}
		}
		if rec.Name == "" {
			return nil, &ValidationError{Index: i, Reason: "missing name"}
		}
	}

	return recs, nil
}

// Save writes recs back to path: two-space indent, HTML escaping off so
// non-ASCII text stays literal, trailing newline. The write is atomic:
// a temp file in the same directory is renamed over the target, so a
// failed run never leaves a truncated records file behind.
func Save(path string, recs []*types.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".records-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recs); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encoding records: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing records file: %w", err)
	}

	return nil
}
