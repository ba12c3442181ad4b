// Package internal holds cross-package integration tests: full evaluation
// runs exercising staging, resolution, every evaluator and the score
// writer together.
package internal

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zerospeech/zrc2021/internal/pipeline"
	"github.com/zerospeech/zrc2021/internal/testutil"
)

// TestFullRunFromZip evaluates a zipped submission across all four tracks
// and checks the shape of every score file.
func TestFullRunFromZip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scores")

	result, err := pipeline.Run(context.Background(), pipeline.Config{
		Dataset:    testutil.Dataset(t),
		Submission: testutil.ZipSubmission(t),
		Output:     out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantHeaders := map[string]string{
		"score_lexical_dev_by_pair.csv":      "id,word,frequency,length,n,score",
		"score_lexical_dev_by_frequency.csv": "frequency,n,score",
		"score_lexical_dev_by_length.csv":    "length,n,score",
		"score_semantic_dev.csv":             "type,dataset,n,correlation",
		"score_syntactic_dev_by_pair.csv":    "id,type,n,score",
		"score_syntactic_dev_by_type.csv":    "type,n,score",
		"score_phonetic_dev_within.csv":      "dataset,score,n",
		"score_phonetic_dev_across.csv":      "dataset,score,n",
	}

	if len(result.Written) != len(wantHeaders) {
		t.Fatalf("wrote %d files, want %d", len(result.Written), len(wantHeaders))
	}

	for _, written := range result.Written {
		wantHeader, ok := wantHeaders[written.Name]
		if !ok {
			t.Errorf("unexpected score file %s", written.Name)
			continue
		}

		f, err := os.Open(written.Path)
		if err != nil {
			t.Fatalf("open %s: %v", written.Path, err)
		}
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			t.Fatalf("parse %s: %v", written.Name, err)
		}

		if got := strings.Join(records[0], ","); got != wantHeader {
			t.Errorf("%s header = %s, want %s", written.Name, got, wantHeader)
		}
		if len(records)-1 != written.Rows {
			t.Errorf("%s has %d data rows, Written reports %d",
				written.Name, len(records)-1, written.Rows)
		}
		if written.Rows == 0 {
			t.Errorf("%s is empty", written.Name)
		}
	}
}

// TestRerunOverwrites checks that a second run over the same output
// directory replaces prior files instead of appending.
func TestRerunOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scores")
	cfg := pipeline.Config{
		Dataset:    testutil.Dataset(t),
		Submission: testutil.Submission(t),
		Output:     out,
	}

	for i := 0; i < 2; i++ {
		if _, err := pipeline.Run(context.Background(), cfg); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(out, "score_syntactic_dev_by_type.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "type,n,score"); got != 1 {
		t.Errorf("header appears %d times after rerun, want 1", got)
	}
}
