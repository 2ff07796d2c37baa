package matcher

import (
	"context"
	"strings"
	"time"

	"github.com/Tanfilov/democrac-server/pkg/types"
)

// Config for the matcher.
type Config struct {
	// Overrides maps Normalize(record name) to a pinned filename.
	// A pin wins over every automatic step, but only when the filename
	// actually exists in the index; otherwise matching falls through.
	Overrides map[string]string
}

// Matcher assigns portrait filenames to records.
type Matcher struct {
	index     *Index
	overrides map[string]string
}

// New creates a matcher over an index.
func New(index *Index, config Config) *Matcher {
	return &Matcher{
		index:     index,
		overrides: config.Overrides,
	}
}

// MatchRecord resolves the image for a single record without mutating it.
// The pipeline stops at the first success: override pin, exact name key,
// alias keys in their given order, then the substring fallback.
func (m *Matcher) MatchRecord(rec *types.Record) (types.Assignment, bool) {
	if img, ok := m.overrides[Normalize(rec.Name)]; ok && m.index.HasFile(img) {
		return types.Assignment{RecordName: rec.Name, Image: img, Kind: types.MatchOverride}, true
	}

	if img, ok := m.index.Lookup(Normalize(rec.Name)); ok {
		return types.Assignment{RecordName: rec.Name, Image: img, Kind: types.MatchName}, true
	}

	for _, alias := range rec.Aliases {
		if img, ok := m.index.Lookup(Normalize(alias)); ok {
			return types.Assignment{RecordName: rec.Name, Image: img, Kind: types.MatchAlias}, true
		}
	}

	if img, ok := m.matchParts(rec.Name); ok {
		return types.Assignment{RecordName: rec.Name, Image: img, Kind: types.MatchParts}, true
	}

	return types.Assignment{}, false
}

// matchParts returns the filename of the first index key (insertion
// order) that contains every normalized part of name as a substring.
// A name with no parts matches nothing.
func (m *Matcher) matchParts(name string) (string, bool) {
	parts := SplitParts(name)
	if len(parts) == 0 {
		return "", false
	}

	for _, key := range m.index.Keys() {
		satisfied := true
		for _, p := range parts {
			if !strings.Contains(key, Normalize(p)) {
				satisfied = false
				break
			}
		}
		if satisfied {
			img, _ := m.index.Lookup(key)
			return img, true
		}
	}
	return "", false
}

// Run matches every record in order, assigning Image on success.
// Records that fail every step keep their existing Image value and are
// listed in the run's Unmatched slice. ctx is checked between records;
// there is no other concurrency.
func (m *Matcher) Run(ctx context.Context, recs []*types.Record) (*types.Run, error) {
	run := &types.Run{
		Timestamp:   time.Now().UTC(),
		Total:       len(recs),
		Assignments: make([]types.Assignment, 0, len(recs)),
	}

	for _, rec := range recs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a, ok := m.MatchRecord(rec)
		if !ok {
			run.Unmatched = append(run.Unmatched, rec.Name)
			continue
		}

		rec.Image = a.Image
		run.Matched++
		run.Assignments = append(run.Assignments, a)
	}

	return run, nil
}
