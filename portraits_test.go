package portraits

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tanfilov/democrac-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	assigner, err := NewAssigner()
	require.NoError(t, err)

	recs := []*types.Record{
		{Name: "John Smith"},
		{Name: "Jane O'Doe", Aliases: []string{"Jane Doe"}},
		{Name: "Unknown Person"},
	}

	run, err := assigner.Assign(context.Background(), recs, []string{"John_Smith.png", "Jane-Doe.png"})
	require.NoError(t, err)

	assert.Equal(t, 2, run.Matched)
	assert.Equal(t, "John_Smith.png", recs[0].Image)
	assert.Equal(t, "Jane-Doe.png", recs[1].Image)
	assert.Equal(t, []string{"Unknown Person"}, run.Unmatched)
}

func TestAssignFile(t *testing.T) {
	tmpDir := t.TempDir()

	recordsPath := filepath.Join(tmpDir, "politicians.json")
	require.NoError(t, os.WriteFile(recordsPath, []byte(`[{"name": "John Smith"}]`), 0644))

	imagesDir := filepath.Join(tmpDir, "images")
	require.NoError(t, os.Mkdir(imagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "John_Smith.png"), []byte("img"), 0644))

	assigner, err := NewAssigner()
	require.NoError(t, err)

	run, err := assigner.AssignFile(context.Background(), recordsPath, imagesDir)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Matched)
	assert.Equal(t, recordsPath, run.RecordsPath)

	data, err := os.ReadFile(recordsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"image": "John_Smith.png"`)
}

func TestAssignFileDryRun(t *testing.T) {
	tmpDir := t.TempDir()

	recordsPath := filepath.Join(tmpDir, "politicians.json")
	original := []byte(`[{"name": "John Smith"}]`)
	require.NoError(t, os.WriteFile(recordsPath, original, 0644))

	imagesDir := filepath.Join(tmpDir, "images")
	require.NoError(t, os.Mkdir(imagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "John_Smith.png"), []byte("img"), 0644))

	assigner, err := NewAssigner(WithDryRun())
	require.NoError(t, err)

	run, err := assigner.AssignFile(context.Background(), recordsPath, imagesDir)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Matched)

	data, err := os.ReadFile(recordsPath)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestAssignFileWithExtensions(t *testing.T) {
	tmpDir := t.TempDir()

	recordsPath := filepath.Join(tmpDir, "politicians.json")
	require.NoError(t, os.WriteFile(recordsPath, []byte(`[{"name": "John Smith"}]`), 0644))

	imagesDir := filepath.Join(tmpDir, "images")
	require.NoError(t, os.Mkdir(imagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "John_Smith.jpg"), []byte("img"), 0644))

	assigner, err := NewAssigner(WithExtensions(".jpg"))
	require.NoError(t, err)

	run, err := assigner.AssignFile(context.Background(), recordsPath, imagesDir)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Matched)
	assert.Equal(t, "John_Smith.jpg", run.Assignments[0].Image)
}

func TestNewAssignerBadOverridesFile(t *testing.T) {
	_, err := NewAssigner(WithOverridesFile("/nonexistent/pins.yaml"))
	assert.Error(t, err)
}
