package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetReportFlags restores report flag defaults between tests.
func resetReportFlags() {
	reportDatastore = "portraits.db"
	reportRunID = 0
	reportFormat = "human"
	reportColor = "auto"
}

// assignWithDatastore runs an assign that records its run history.
func assignWithDatastore(t *testing.T) string {
	t.Helper()
	resetAssignFlags()
	recordsPath, imagesDir := setupFixture(t)

	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	assignImagesDir = imagesDir
	assignDatastore = filepath.Join(t.TempDir(), "portraits.db")

	require.NoError(t, runAssign(cmd, []string{recordsPath}))
	return assignDatastore
}

func TestRunReport(t *testing.T) {
	dbPath := assignWithDatastore(t)

	resetReportFlags()
	reportDatastore = dbPath

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runReport(cmd, []string{}))

	output := out.String()
	assert.Contains(t, output, "Matched 2 of 3 records")
	assert.Contains(t, output, "John Smith")
	assert.Contains(t, output, "John_Smith.png")
	assert.Contains(t, output, "Unmatched:")
	assert.Contains(t, output, "Unknown Person")
}

func TestRunReportJSON(t *testing.T) {
	dbPath := assignWithDatastore(t)

	resetReportFlags()
	reportDatastore = dbPath
	reportFormat = "json"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runReport(cmd, []string{}))
	assert.Contains(t, out.String(), `"matched": 2`)
	assert.Contains(t, out.String(), `"kind": "alias"`)
}

func TestRunReportByID(t *testing.T) {
	dbPath := assignWithDatastore(t)

	resetReportFlags()
	reportDatastore = dbPath
	reportRunID = 1

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runReport(cmd, []string{}))
	assert.Contains(t, out.String(), "Run 1")
}

func TestRunReportMissingDatastore(t *testing.T) {
	resetReportFlags()
	reportDatastore = "/nonexistent/portraits.db"

	cmd := &cobra.Command{}
	err := runReport(cmd, []string{})
	assert.Error(t, err)
}

func TestRunReportMemoryDatastoreRejected(t *testing.T) {
	resetReportFlags()
	reportDatastore = ":memory:"

	cmd := &cobra.Command{}
	err := runReport(cmd, []string{})
	assert.Error(t, err)
}
