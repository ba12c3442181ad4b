package score

import (
	"os"
	"path/filepath"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		track, split, strat string
		want                string
	}{
		{"lexical", "dev", "by_pair", "score_lexical_dev_by_pair.csv"},
		{"syntactic", "test", "by_type", "score_syntactic_test_by_type.csv"},
		{"semantic", "dev", "", "score_semantic_dev.csv"},
		{"phonetic", "dev", "within", "score_phonetic_dev_within.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Name(tt.track, tt.split, tt.strat); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable_Rendering(t *testing.T) {
	table := NewTable("id", "n", "score")
	table.AddRow("pair_1", 3, 0.5)
	table.AddRow("pair_2", 12, 1.0/3.0)

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("Len = %d, want 2", len(rows))
	}
	if rows[0][2] != "0.5000" {
		t.Errorf("float rendering = %q, want %q", rows[0][2], "0.5000")
	}
	if rows[1][2] != "0.3333" {
		t.Errorf("float rendering = %q, want %q", rows[1][2], "0.3333")
	}
	if rows[1][1] != "12" {
		t.Errorf("int rendering = %q, want %q", rows[1][1], "12")
	}
}

func TestTable_RowArityMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("AddRow with wrong arity should panic")
		}
	}()

	table := NewTable("a", "b")
	table.AddRow("only one")
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scores")
	w := NewWriter(dir)

	table := NewTable("frequency", "n", "score")
	table.AddRow("oov", 10, 0.75)
	table.AddRow("1-5", 4, 0.25)

	written, err := w.Write(table, Name("lexical", "dev", "by_frequency"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if written.Rows != 2 {
		t.Errorf("Rows = %d, want 2", written.Rows)
	}

	content, err := os.ReadFile(written.Path)
	if err != nil {
		t.Fatalf("reading score file: %v", err)
	}
	want := "frequency,n,score\noov,10,0.7500\n1-5,4,0.2500\n"
	if string(content) != want {
		t.Errorf("score file = %q, want %q", content, want)
	}
}

func TestWriter_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	first := NewTable("id", "score")
	first.AddRow("a", 1.0)
	first.AddRow("b", 0.0)
	if _, err := w.Write(first, "score_lexical_dev_by_pair.csv"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	second := NewTable("id", "score")
	second.AddRow("c", 0.5)
	if _, err := w.Write(second, "score_lexical_dev_by_pair.csv"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "score_lexical_dev_by_pair.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "id,score\nc,0.5000\n"
	if string(content) != want {
		t.Errorf("score file = %q, want %q (no append, no versioning)", content, want)
	}
}

func TestWriter_Determinism(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	build := func() *Table {
		table := NewTable("id", "score")
		table.AddRow("a", 0.1234567)
		table.AddRow("b", 0.9999999)
		return table
	}

	w1, err := w.Write(build(), "score_syntactic_dev_by_pair.csv")
	if err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(w1.Path)
	if err != nil {
		t.Fatal(err)
	}

	w2, err := w.Write(build(), "score_syntactic_dev_by_pair.csv")
	if err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(w2.Path)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("identical tables should serialize to identical bytes")
	}
}

func TestWriter_EnsureDirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(filepath.Join(blocker, "scores"))
	if err := w.EnsureDir(); err == nil {
		t.Fatal("EnsureDir should fail when a path component is a file")
	}
}
