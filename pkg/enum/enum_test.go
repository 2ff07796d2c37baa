package enum

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0644); err != nil {
			t.Fatalf("failed to create test file %s: %v", name, err)
		}
	}
}

func TestEnumerateSortedAndFiltered(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "Zed_Last.png", "Al_First.png", "notes.txt", "photo.PNG")

	// Subdirectories are ignored, even with eligible extensions inside
	subDir := filepath.Join(tmpDir, "nested.png")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	writeFiles(t, subDir, "inner.png")

	e := NewImageEnumerator(Config{Dir: tmpDir})
	files, err := e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	// Sorted order, extension matched case-insensitively, txt skipped
	want := []string{"Al_First.png", "Zed_Last.png", "photo.PNG"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Enumerate = %v, want %v", files, want)
	}
}

func TestEnumerateHiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "visible.png", ".hidden.png")

	e := NewImageEnumerator(Config{Dir: tmpDir})
	files, err := e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"visible.png"}) {
		t.Errorf("hidden file not skipped: %v", files)
	}

	e = NewImageEnumerator(Config{Dir: tmpDir, IncludeHidden: true})
	files, err = e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{".hidden.png", "visible.png"}) {
		t.Errorf("IncludeHidden = %v", files)
	}
}

func TestEnumerateExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.png", "b.jpg", "c.jpeg", "d.gif")

	e := NewImageEnumerator(Config{
		Dir:        tmpDir,
		Extensions: []string{".png", ".jpg"},
	})
	files, err := e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"a.png", "b.jpg"}) {
		t.Errorf("Enumerate = %v", files)
	}
}

func TestEnumerateIgnoreFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.png", "placeholder.png")
	if err := os.WriteFile(filepath.Join(tmpDir, IgnoreFile), []byte("placeholder*\n"), 0644); err != nil {
		t.Fatalf("failed to write ignore file: %v", err)
	}

	e := NewImageEnumerator(Config{Dir: tmpDir})
	files, err := e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"keep.png"}) {
		t.Errorf("ignore file not applied: %v", files)
	}
}

func TestEnumerateUnreadableIgnoreFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.png")
	// A directory at the ignore-file path stats fine but cannot be read.
	if err := os.Mkdir(filepath.Join(tmpDir, IgnoreFile), 0755); err != nil {
		t.Fatalf("failed to create ignore dir: %v", err)
	}

	e := NewImageEnumerator(Config{Dir: tmpDir})
	if _, err := e.Enumerate(context.Background()); err == nil {
		t.Error("expected error for unreadable ignore file")
	}
}

func TestEnumerateExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.png", "draft_one.png", "draft_two.png")

	e := NewImageEnumerator(Config{Dir: tmpDir, Exclude: []string{"draft_*.png"}})
	files, err := e.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"keep.png"}) {
		t.Errorf("exclude glob not applied: %v", files)
	}
}

func TestEnumerateInvalidExcludeGlob(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "keep.png")

	e := NewImageEnumerator(Config{Dir: tmpDir, Exclude: []string{"[invalid"}})
	if _, err := e.Enumerate(context.Background()); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}

func TestEnumerateMissingDirectory(t *testing.T) {
	e := NewImageEnumerator(Config{Dir: "/nonexistent/images"})
	if _, err := e.Enumerate(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"png", []string{".png"}},
		{"png,jpg", []string{".png", ".jpg"}},
		{".PNG, Jpeg ,", []string{".png", ".jpeg"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseExtensions(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseExtensions(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
