package tracks

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestReadGold(t *testing.T) {
	path := writeFile(t, "filename,id,correct\na,1,1\nb,1,0\n")

	gold, err := ReadGold(path)
	if err != nil {
		t.Fatalf("ReadGold: %v", err)
	}
	if len(gold.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(gold.Rows))
	}

	id, err := gold.Field(gold.Rows[1], "id")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if id != "1" {
		t.Errorf("id = %q, want 1", id)
	}

	if _, err := gold.Field(gold.Rows[0], "voice"); err == nil {
		t.Error("expected an error for a column the schema lacks")
	}
}

func TestReadGold_Errors(t *testing.T) {
	if _, err := ReadGold(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := ReadGold(writeFile(t, "")); err == nil {
		t.Error("expected an error for an empty file")
	}
}

func TestReadPredictions(t *testing.T) {
	path := writeFile(t, "a -1.5\n\nb 2\n")

	scores, err := ReadPredictions(path)
	if err != nil {
		t.Fatalf("ReadPredictions: %v", err)
	}
	if len(scores) != 2 || scores["a"] != -1.5 || scores["b"] != 2 {
		t.Errorf("scores = %v", scores)
	}

	if _, err := Score(scores, path, "a"); err != nil {
		t.Errorf("Score(a): %v", err)
	}
	if _, err := Score(scores, path, "missing"); err == nil {
		t.Error("expected an error for an unpredicted item")
	}
}

func TestReadPredictions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong arity", "a 1 extra\n"},
		{"bad score", "a x\n"},
		{"duplicate item", "a 1\na 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPredictions(writeFile(t, tt.content)); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
