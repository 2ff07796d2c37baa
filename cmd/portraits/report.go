package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Tanfilov/democrac-server/pkg/store"
	"github.com/Tanfilov/democrac-server/pkg/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	reportDatastore string
	reportRunID     int64
	reportFormat    string
	reportColor     string
)

// styles holds color formatters for the human report
type styles struct {
	heading   *color.Color
	matched   *color.Color
	unmatched *color.Color
	image     *color.Color
	kind      *color.Color
}

// newStyles creates color formatters for report output.
// enabled=false respects --color never and non-tty stdout.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:   color.New(color.Bold, color.FgHiWhite),
		matched:   color.New(color.FgHiGreen),
		unmatched: color.New(color.FgYellow),
		image:     color.New(color.FgHiBlue),
		kind:      color.New(color.Faint),
	}

	if !enabled {
		// Disable colors on all formatters
		s.heading.DisableColor()
		s.matched.DisableColor()
		s.unmatched.DisableColor()
		s.image.DisableColor()
		s.kind.DisableColor()
	}

	return s
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a recorded run",
	Long:  "Read run history from a datastore and print one run's assignments and unmatched records",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "portraits.db", "Path to the run history database")
	reportCmd.Flags().Int64Var(&reportRunID, "run", 0, "Run ID to report (default: latest)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportDatastore == ":memory:" {
		return fmt.Errorf("cannot report from an in-memory datastore")
	}
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	var run *types.Run
	if reportRunID > 0 {
		run, err = s.GetRun(reportRunID)
	} else {
		run, err = s.GetLatestRun()
	}
	if errors.Is(err, store.ErrNoRuns) {
		return fmt.Errorf("datastore %s holds no runs", reportDatastore)
	}
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}

	switch reportFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(run)
	case "human":
		return printRun(cmd.OutOrStdout(), run)
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}
}

func printRun(out io.Writer, run *types.Run) error {
	st := newStyles(colorEnabled(reportColor, out))

	st.heading.Fprintf(out, "Run %d (%s)\n", run.ID, run.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Records: %s\n", run.RecordsPath)
	fmt.Fprintf(out, "Images:  %s\n", run.ImagesDir)
	fmt.Fprintf(out, "Matched %d of %d records\n", run.Matched, run.Total)

	if len(run.Assignments) > 0 {
		fmt.Fprintln(out)
		st.heading.Fprintln(out, "Assignments:")
		for _, a := range run.Assignments {
			st.matched.Fprintf(out, "  %s", a.RecordName)
			fmt.Fprint(out, " -> ")
			st.image.Fprint(out, a.Image)
			st.kind.Fprintf(out, " (%s)", a.Kind)
			fmt.Fprintln(out)
		}
	}

	if len(run.Unmatched) > 0 {
		fmt.Fprintln(out)
		st.heading.Fprintln(out, "Unmatched:")
		for _, name := range run.Unmatched {
			st.unmatched.Fprintf(out, "  %s\n", name)
		}
	}

	return nil
}

// colorEnabled decides whether the report uses color: forced by
// --color always/never, otherwise on only when writing to a terminal.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}
