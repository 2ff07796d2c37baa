// Package portraits reconciles politician records with a directory of
// portrait images.
//
// Each record's name (then its aliases, then a substring fallback over
// the name parts) is normalized into a lookup key and compared against
// the normalized stems of the image filenames; the matching filename is
// written into the record's image field.
//
// # Basic Usage
//
// Create an assigner and reconcile a records file in place:
//
//	assigner, err := portraits.NewAssigner()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	run, err := assigner.AssignFile(ctx, "politicians.json", "images")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Updated %d entries\n", run.Matched)
//	for _, name := range run.Unmatched {
//	    fmt.Printf("No image found for %s\n", name)
//	}
package portraits

import (
	"context"
	"fmt"

	"github.com/Tanfilov/democrac-server/pkg/enum"
	"github.com/Tanfilov/democrac-server/pkg/matcher"
	"github.com/Tanfilov/democrac-server/pkg/override"
	"github.com/Tanfilov/democrac-server/pkg/records"
	"github.com/Tanfilov/democrac-server/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/Tanfilov/democrac-server" without
// subpackages.
type (
	// Record is a single politician entry.
	Record = types.Record

	// Run summarizes one reconciliation pass.
	Run = types.Run

	// Assignment records one record/image pairing.
	Assignment = types.Assignment
)

// Assigner reconciles records with portrait images.
type Assigner struct {
	config *assignerConfig
}

// assignerConfig holds assigner configuration.
type assignerConfig struct {
	extensions    []string
	includeHidden bool
	excludeGlobs  []string
	overrides     map[string]string
	overridesPath string
	dryRun        bool
}

// Option configures an Assigner.
type Option func(*assignerConfig)

// WithExtensions sets the eligible image extensions (e.g. ".png",
// ".jpg"). Default is ".png" only.
func WithExtensions(exts ...string) Option {
	return func(c *assignerConfig) {
		c.extensions = exts
	}
}

// WithIncludeHidden includes dot-files when listing the image directory.
func WithIncludeHidden() Option {
	return func(c *assignerConfig) {
		c.includeHidden = true
	}
}

// WithExcludeGlobs skips image files whose bare filename matches any of
// the given glob patterns.
func WithExcludeGlobs(globs ...string) Option {
	return func(c *assignerConfig) {
		c.excludeGlobs = globs
	}
}

// WithOverrides supplies manual pins: normalized record name to
// filename. A pin beats every automatic matching step.
func WithOverrides(overrides map[string]string) Option {
	return func(c *assignerConfig) {
		c.overrides = overrides
	}
}

// WithOverridesFile loads manual pins from a YAML file.
func WithOverridesFile(path string) Option {
	return func(c *assignerConfig) {
		c.overridesPath = path
	}
}

// WithDryRun matches and reports without writing the records file back.
func WithDryRun() Option {
	return func(c *assignerConfig) {
		c.dryRun = true
	}
}

// NewAssigner creates an Assigner with the given options.
func NewAssigner(opts ...Option) (*Assigner, error) {
	config := &assignerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.overridesPath != "" {
		ovs, err := override.NewLoader().LoadFile(config.overridesPath)
		if err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
		config.overrides = ovs
	}

	return &Assigner{config: config}, nil
}

// Assign matches recs against the given image filenames, mutating each
// matched record's Image field. The filenames are indexed in the order
// given.
func (a *Assigner) Assign(ctx context.Context, recs []*types.Record, filenames []string) (*types.Run, error) {
	index := matcher.NewIndex(filenames)
	m := matcher.New(index, matcher.Config{Overrides: a.config.overrides})
	return m.Run(ctx, recs)
}

// AssignFile loads the records file, enumerates the image directory,
// matches, and writes the updated records back in place (unless the
// assigner was created with WithDryRun).
func (a *Assigner) AssignFile(ctx context.Context, recordsPath, imagesDir string) (*types.Run, error) {
	recs, err := records.Load(recordsPath)
	if err != nil {
		return nil, err
	}

	enumerator := enum.NewImageEnumerator(enum.Config{
		Dir:           imagesDir,
		Extensions:    a.config.extensions,
		IncludeHidden: a.config.includeHidden,
		Exclude:       a.config.excludeGlobs,
	})
	filenames, err := enumerator.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	run, err := a.Assign(ctx, recs, filenames)
	if err != nil {
		return nil, err
	}
	run.RecordsPath = recordsPath
	run.ImagesDir = imagesDir

	if !a.config.dryRun {
		if err := records.Save(recordsPath, recs); err != nil {
			return nil, err
		}
	}

	return run, nil
}
