package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// ZipSubmission writes the canonical submission as a zip archive and
// returns its path. Entries are written in sorted order.
func ZipSubmission(t *testing.T) string {
	t.Helper()
	return ZipFiles(t, SubmissionFiles())
}

// ZipFiles writes the file map as a zip archive under a fresh temp
// directory and returns its path.
func ZipFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submission.zip")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	w := zip.NewWriter(f)
	for _, name := range names {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(files[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}
