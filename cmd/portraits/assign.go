package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Tanfilov/democrac-server/pkg/enum"
	"github.com/Tanfilov/democrac-server/pkg/matcher"
	"github.com/Tanfilov/democrac-server/pkg/override"
	"github.com/Tanfilov/democrac-server/pkg/records"
	"github.com/Tanfilov/democrac-server/pkg/store"
	"github.com/spf13/cobra"
)

var (
	assignImagesDir     string
	assignExtensions    string
	assignIncludeHidden bool
	assignExclude       []string
	assignOverridesPath string
	assignDryRun        bool
	assignDatastore     string
	assignFormat        string
)

var assignCmd = &cobra.Command{
	Use:   "assign <records.json>",
	Short: "Assign portrait images to records",
	Long: "Match each record's name and aliases against the image directory " +
		"and write the assigned filenames back into the records file",
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignImagesDir, "images", "", "Image directory (default: images directory beside the records file)")
	assignCmd.Flags().StringVar(&assignExtensions, "ext", "png", "Eligible image extensions (comma-separated)")
	assignCmd.Flags().BoolVar(&assignIncludeHidden, "include-hidden", false, "Include hidden image files")
	assignCmd.Flags().StringArrayVar(&assignExclude, "exclude", nil, "Glob pattern for image files to skip (repeatable)")
	assignCmd.Flags().StringVar(&assignOverridesPath, "overrides", "", "Path to YAML file with manual name-to-image pins")
	assignCmd.Flags().BoolVar(&assignDryRun, "dry-run", false, "Match and report without writing the records file")
	assignCmd.Flags().StringVar(&assignDatastore, "datastore", "", "Record the run in a history database")
	assignCmd.Flags().StringVar(&assignFormat, "format", "human", "Output format: human, json")
}

func runAssign(cmd *cobra.Command, args []string) error {
	recordsPath := args[0]
	imagesDir := assignImagesDir
	if imagesDir == "" {
		imagesDir = filepath.Join(filepath.Dir(recordsPath), "images")
	}

	// Validate inputs exist
	if _, err := os.Stat(recordsPath); err != nil {
		return fmt.Errorf("records file does not exist: %s", recordsPath)
	}
	info, err := os.Stat(imagesDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("image directory does not exist: %s", imagesDir)
	}

	// Load records
	recs, err := records.Load(recordsPath)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	// List eligible image files
	ctx := context.Background()
	enumerator := enum.NewImageEnumerator(enum.Config{
		Dir:           imagesDir,
		Extensions:    enum.ParseExtensions(assignExtensions),
		IncludeHidden: assignIncludeHidden,
		Exclude:       assignExclude,
	})
	filenames, err := enumerator.Enumerate(ctx)
	if err != nil {
		return fmt.Errorf("listing images: %w", err)
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Indexed %d image files from %s\n", len(filenames), imagesDir)
	}

	// Load manual pins, if any
	var overrides map[string]string
	if assignOverridesPath != "" {
		overrides, err = override.NewLoader().LoadFile(assignOverridesPath)
		if err != nil {
			return fmt.Errorf("loading overrides: %w", err)
		}
	}

	// Match
	index := matcher.NewIndex(filenames)

	// A pin whose image is not in the listing falls through to
	// automatic matching; surface it so a typo in the overrides
	// file does not pass silently.
	pinned := make([]string, 0, len(overrides))
	for name := range overrides {
		pinned = append(pinned, name)
	}
	sort.Strings(pinned)
	for _, name := range pinned {
		if img := overrides[name]; !index.HasFile(img) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: override image %s for %s not in image directory\n", img, name)
		}
	}

	m := matcher.New(index, matcher.Config{Overrides: overrides})
	run, err := m.Run(ctx, recs)
	if err != nil {
		return fmt.Errorf("matching records: %w", err)
	}
	run.RecordsPath = recordsPath
	run.ImagesDir = imagesDir

	// Write records back in place
	if !assignDryRun {
		if err := records.Save(recordsPath, recs); err != nil {
			return fmt.Errorf("saving records: %w", err)
		}
	}

	// Record run history
	if assignDatastore != "" {
		s, err := store.New(store.Config{Path: assignDatastore})
		if err != nil {
			return fmt.Errorf("opening datastore: %w", err)
		}
		defer s.Close()

		if _, err := s.AddRun(run); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	// Diagnostics go to stderr so --format json keeps stdout pure JSON
	if !quiet {
		for _, name := range run.Unmatched {
			fmt.Fprintf(cmd.ErrOrStderr(), "No image found for %s\n", name)
		}
	}

	switch assignFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(run)
	case "human":
		if !quiet {
			if assignDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d entries (dry run, nothing written)\n", run.Matched)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d entries\n", run.Matched)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", assignFormat)
	}
}
