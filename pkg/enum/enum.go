// Package enum discovers candidate portrait files in an image directory.
package enum

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile is the optional gitignore-style exclusion file looked up
// inside the image directory.
const IgnoreFile = ".portraitsignore"

// Config for enumeration.
type Config struct {
	// Dir is the image directory. Only its immediate entries are
	// considered; subdirectories are ignored.
	Dir string

	// Extensions are the eligible file extensions, with leading dot,
	// lowercase (e.g. ".png"). Comparison is case-insensitive.
	// Empty means ".png" only.
	Extensions []string

	// IncludeHidden includes dot-files.
	IncludeHidden bool

	// Exclude holds glob patterns (doublestar syntax) matched against
	// the bare filename; matching files are skipped.
	Exclude []string
}

// ImageEnumerator lists eligible image filenames from a directory.
type ImageEnumerator struct {
	config Config
}

// NewImageEnumerator creates an enumerator for the configured directory.
func NewImageEnumerator(config Config) *ImageEnumerator {
	return &ImageEnumerator{config: config}
}

// Enumerate returns the eligible filenames in sorted order.
// Sorted order (not platform listing order) keeps index construction
// deterministic across filesystems.
func (e *ImageEnumerator) Enumerate(ctx context.Context) ([]string, error) {
	exts := e.config.Extensions
	if len(exts) == 0 {
		exts = []string{".png"}
	}

	// Validate exclude patterns up front so a bad glob fails the run
	// instead of silently excluding nothing.
	for _, pattern := range e.config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var ignore *gitignore.GitIgnore
	ignorePath := filepath.Join(e.config.Dir, IgnoreFile)
	if _, err := os.Stat(ignorePath); err == nil {
		var cerr error
		ignore, cerr = gitignore.CompileIgnoreFile(ignorePath)
		if cerr != nil {
			return nil, fmt.Errorf("reading ignore file: %w", cerr)
		}
	}

	entries, err := os.ReadDir(e.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	// os.ReadDir returns entries sorted by filename.
	var files []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !e.config.IncludeHidden && isHidden(name) {
			continue
		}
		if !hasExtension(name, exts) {
			continue
		}
		if ignore != nil && ignore.MatchesPath(name) {
			continue
		}
		if excluded(name, e.config.Exclude) {
			continue
		}

		files = append(files, name)
	}

	return files, nil
}

// ParseExtensions turns a comma-separated list like "png,JPG, jpeg"
// into normalized extensions: lowercase, leading dot, blanks dropped.
func ParseExtensions(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

// hasExtension checks the filename extension against exts,
// case-insensitively.
func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// excluded checks name against the exclude globs. Patterns were
// validated before the listing loop, so Match cannot fail here.
func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// isHidden checks if a filename is hidden (starts with .).
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
