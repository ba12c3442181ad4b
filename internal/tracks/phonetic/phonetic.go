// Package phonetic scores a submission on phonetic discriminability using
// the ABX paradigm: frame-level representations of triphone occurrences
// are compared with DTW-aligned angular distances, within and across
// speakers. Unlike the other tracks it writes its own score files, one per
// (split, task), because its output shape is irregular per split.
package phonetic

import (
	"path/filepath"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/features"
	"github.com/zerospeech/zrc2021/internal/score"
)

// Subset couples one evaluation subset's gold item file with the
// submission's matching feature directory.
type Subset struct {
	Name       string // e.g. "clean"
	ItemFile   string // gold ABX item file
	FeatureDir string // submitted features, one .txt per utterance
}

// Evaluate scores every subset of one split and writes the within- and
// across-speaker score files through w. frameShift is the submission's
// declared feature frame period in seconds.
func Evaluate(subsets []Subset, frameShift float64, w *score.Writer, split string) ([]score.Written, error) {
	within := score.NewTable("dataset", "score", "n")
	across := score.NewTable("dataset", "score", "n")

	for _, subset := range subsets {
		scores, err := evaluateSubset(subset, frameShift)
		if err != nil {
			return nil, err
		}
		within.AddRow(subset.Name, scores.WithinError, scores.Within)
		across.AddRow(subset.Name, scores.AcrossError, scores.Across)
	}

	var written []score.Written
	for _, out := range []struct {
		task  string
		table *score.Table
	}{
		{"within", within},
		{"across", across},
	} {
		file, err := w.Write(out.table, score.Name("phonetic", split, out.task))
		if err != nil {
			return nil, err
		}
		written = append(written, file)
	}
	return written, nil
}

func evaluateSubset(subset Subset, frameShift float64) (Scores, error) {
	items, err := readItems(subset.ItemFile)
	if err != nil {
		return Scores{}, err
	}

	// Load each referenced utterance once. Every file must agree on the
	// feature dimension or frame distances are undefined.
	frames := make(map[string][][]float64)
	width := 0
	for _, item := range items {
		if _, ok := frames[item.File]; ok {
			continue
		}
		matrix, err := features.ReadMatrix(filepath.Join(subset.FeatureDir, item.File+".txt"))
		if err != nil {
			return Scores{}, err
		}
		if width == 0 {
			width = len(matrix[0])
		} else if len(matrix[0]) != width {
			return Scores{}, errors.Wrapf(errors.ErrInvalidInput,
				"feature file %s has %d columns, other files have %d", item.File, len(matrix[0]), width)
		}
		frames[item.File] = matrix
	}

	return computeABX(items, frames, frameShift)
}
