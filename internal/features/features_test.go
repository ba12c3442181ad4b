package features

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadMatrix(t *testing.T) {
	path := writeFile(t, t.TempDir(), "frames.txt", "0.1 0.2 0.3\n\n1 2 3\n")

	m, err := ReadMatrix(path)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if len(m) != 2 || len(m[0]) != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", len(m), len(m[0]))
	}
	if m[1][2] != 3 {
		t.Errorf("m[1][2] = %v, want 3", m[1][2])
	}
}

func TestReadMatrix_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"missing file", filepath.Join(dir, "absent.txt"), ""},
		{"bad value", writeFile(t, dir, "bad.txt", "0.1 oops\n"), ""},
		{"ragged rows", writeFile(t, dir, "ragged.txt", "1 2\n1 2 3\n"), ""},
		{"empty file", writeFile(t, dir, "empty.txt", "\n\n"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMatrix(tt.path); err == nil {
				t.Errorf("ReadMatrix(%s) should fail", tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "1\n")
	writeFile(t, dir, "a.txt", "1\n")
	writeFile(t, dir, "notes.md", "ignored\n")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("List = %v, want [a b]", names)
	}
}

func TestList_MissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("List should fail for a missing directory")
	}
}

func almost(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCosineDistance(t *testing.T) {
	almost(t, CosineDistance([]float64{1, 0}, []float64{1, 0}), 0)
	almost(t, CosineDistance([]float64{1, 0}, []float64{0, 1}), 1)
	almost(t, CosineDistance([]float64{1, 0}, []float64{-1, 0}), 2)
	almost(t, CosineDistance([]float64{0, 0}, []float64{1, 0}), 1)
}

func TestEuclideanDistance(t *testing.T) {
	almost(t, EuclideanDistance([]float64{0, 0}, []float64{3, 4}), 5)
	almost(t, EuclideanDistance([]float64{1, 1}, []float64{1, 1}), 0)
}

func TestAngularDistance(t *testing.T) {
	almost(t, AngularDistance([]float64{1, 0}, []float64{1, 0}), 0)
	almost(t, AngularDistance([]float64{1, 0}, []float64{0, 1}), 0.5)
	almost(t, AngularDistance([]float64{1, 0}, []float64{-1, 0}), 1)
}
