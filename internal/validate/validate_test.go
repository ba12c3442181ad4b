package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zerospeech/zrc2021/internal/dataset"
	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

// buildTree writes an empty file or directory for every relative path.
// Paths ending in / become directories.
func buildTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", full, err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

func goldAndSubmission(t *testing.T) (dataset.Resolved, string) {
	t.Helper()
	goldRoot := t.TempDir()
	submission := t.TempDir()

	buildTree(t, goldRoot,
		"lexical/dev/gold.csv",
		"syntactic/dev/gold.csv",
		"semantic/dev/gold.csv",
		"semantic/dev/pairs.csv",
		"phonetic/abx_features/dev-clean.item",
		"phonetic/abx_features/dev-other.item",
	)
	buildTree(t, submission,
		"lexical/dev.txt",
		"syntactic/dev.txt",
		"semantic/dev/",
		"phonetic/dev-clean/utt1.txt",
		"phonetic/dev-other/utt1.txt",
	)
	if err := os.WriteFile(filepath.Join(submission, "meta.yaml"), []byte(`author: someone
parameters:
  semantic:
    metric: cosine
    pooling: mean
`), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	gold, err := dataset.Resolve(dataset.Options{Root: goldRoot})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return gold, submission
}

func TestTrack_CompleteTree(t *testing.T) {
	gold, submission := goldAndSubmission(t)

	for _, track := range tracks.Order {
		if err := Track(track, gold, submission, dataset.Dev); err != nil {
			t.Errorf("Track(%s) = %v, want nil", track, err)
		}
	}
}

func TestTrack_MissingArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		track  tracks.Track
		remove string
	}{
		{"lexical gold", tracks.Lexical, "gold:lexical/dev/gold.csv"},
		{"lexical submission", tracks.Lexical, "sub:lexical/dev.txt"},
		{"syntactic submission", tracks.Syntactic, "sub:syntactic/dev.txt"},
		{"semantic pairs", tracks.Semantic, "gold:semantic/dev/pairs.csv"},
		{"semantic embeddings", tracks.Semantic, "sub:semantic/dev"},
		{"phonetic item file", tracks.Phonetic, "gold:phonetic/abx_features/dev-other.item"},
		{"phonetic features", tracks.Phonetic, "sub:phonetic/dev-clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gold, submission := goldAndSubmission(t)

			root := submission
			rel, ok := strings.CutPrefix(tt.remove, "gold:")
			if ok {
				root = gold.Root
			} else {
				rel = strings.TrimPrefix(tt.remove, "sub:")
			}
			if err := os.RemoveAll(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
				t.Fatalf("remove: %v", err)
			}

			err := Track(tt.track, gold, submission, dataset.Dev)
			if err == nil {
				t.Fatal("expected an error for the missing artifact")
			}
			if !errors.IsValidation(err) {
				t.Errorf("error %v is not a validation error", err)
			}
		})
	}
}

func TestTrack_EmptyPhoneticFeatureDir(t *testing.T) {
	gold, submission := goldAndSubmission(t)
	if err := os.Remove(filepath.Join(submission, "phonetic", "dev-other", "utt1.txt")); err != nil {
		t.Fatal(err)
	}

	err := Track(tracks.Phonetic, gold, submission, dataset.Dev)
	if err == nil {
		t.Fatal("expected an error for a feature directory with no files")
	}
	if !errors.IsValidation(err) {
		t.Errorf("error %v is not a validation error", err)
	}
}

func TestTrack_FileWhereDirectoryExpected(t *testing.T) {
	gold, submission := goldAndSubmission(t)

	dir := filepath.Join(submission, "semantic", "dev")
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Track(tracks.Semantic, gold, submission, dataset.Dev); err == nil {
		t.Fatal("expected an error for a file in place of the embedding directory")
	}
}

func TestSubmission(t *testing.T) {
	gold, submission := goldAndSubmission(t)

	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, nil); err != nil {
		t.Fatalf("Submission = %v, want nil", err)
	}
}

func TestSubmission_SkipExcludesTrack(t *testing.T) {
	gold, submission := goldAndSubmission(t)
	if err := os.RemoveAll(filepath.Join(submission, "phonetic")); err != nil {
		t.Fatal(err)
	}

	skip := map[tracks.Track]bool{tracks.Phonetic: true}
	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, skip); err != nil {
		t.Fatalf("Submission with phonetic skipped = %v, want nil", err)
	}
	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, nil); err == nil {
		t.Fatal("expected an error when the phonetic track is enabled")
	}
}

func TestSubmission_MissingMeta(t *testing.T) {
	gold, submission := goldAndSubmission(t)
	if err := os.Remove(filepath.Join(submission, "meta.yaml")); err != nil {
		t.Fatal(err)
	}

	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, nil); err == nil {
		t.Fatal("expected an error for a missing meta.yaml")
	}

	// Only the semantic track needs the record; skipping it makes the
	// missing file acceptable.
	skip := map[tracks.Track]bool{tracks.Semantic: true}
	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, skip); err != nil {
		t.Fatalf("Submission without meta, semantic skipped = %v, want nil", err)
	}
}

func TestSubmission_MalformedMetaAlwaysFails(t *testing.T) {
	gold, submission := goldAndSubmission(t)
	if err := os.WriteFile(filepath.Join(submission, "meta.yaml"),
		[]byte("author: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	skip := map[tracks.Track]bool{tracks.Semantic: true}
	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, skip); err == nil {
		t.Fatal("expected an error for an unparseable meta.yaml")
	}
}

func TestSubmission_MissingSemanticParams(t *testing.T) {
	gold, submission := goldAndSubmission(t)
	if err := os.WriteFile(filepath.Join(submission, "meta.yaml"),
		[]byte("author: someone\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, nil); err == nil {
		t.Fatal("expected an error for undeclared semantic parameters")
	}

	skip := map[tracks.Track]bool{tracks.Semantic: true}
	if err := Submission(gold, submission, []dataset.Split{dataset.Dev}, skip); err != nil {
		t.Fatalf("Submission with semantic skipped = %v, want nil", err)
	}
}
