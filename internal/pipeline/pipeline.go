// Package pipeline drives a full evaluation run: it resolves the gold
// dataset, stages the submission, then executes the enabled track
// evaluators sequentially over every split in scope, writing each score
// table as soon as it is produced. There is no rollback; a failure leaves
// the files written so far in place and surfaces the error unchanged.
package pipeline

import (
	"context"
	"os"

	"github.com/zerospeech/zrc2021/internal/dataset"
	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/meta"
	"github.com/zerospeech/zrc2021/internal/score"
	"github.com/zerospeech/zrc2021/internal/staging"
	"github.com/zerospeech/zrc2021/internal/tracks"
	"github.com/zerospeech/zrc2021/internal/tracks/lexical"
	"github.com/zerospeech/zrc2021/internal/tracks/phonetic"
	"github.com/zerospeech/zrc2021/internal/tracks/semantic"
	"github.com/zerospeech/zrc2021/internal/tracks/syntactic"
	"github.com/zerospeech/zrc2021/internal/validate"
)

// Config holds the inputs of one evaluation run.
type Config struct {
	// Dataset is the gold dataset root directory.
	Dataset string
	// Submission is the submission directory or zip archive.
	Submission string
	// Output is the directory score files are written into.
	Output string
	// TestGold, when non-empty, is the organizer-provided gold location:
	// it adds the test split and replaces Dataset as the gold root.
	TestGold string
	// Skip disables tracks mapped to true.
	Skip map[tracks.Track]bool
}

// Result summarizes a completed run.
type Result struct {
	// Splits that were in scope.
	Splits []dataset.Split
	// Written lists every score file produced, in write order.
	Written []score.Written
}

// Run executes one evaluation end to end. The context is checked between
// tracks; evaluators themselves are not interruptible.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	log := o.logger

	gold, err := dataset.Resolve(dataset.Options{Root: cfg.Dataset, TestGold: cfg.TestGold})
	if err != nil {
		return nil, err
	}
	log.Info("resolved gold dataset", "root", gold.Root, "splits", len(gold.Splits))

	staged, err := staging.Stage(cfg.Submission)
	if err != nil {
		return nil, err
	}
	defer staged.Release()
	if staged.Temp() {
		log.Info("extracted submission archive", "dir", staged.Dir)
	}

	writer := score.NewWriter(cfg.Output)
	if err := writer.EnsureDir(); err != nil {
		return nil, err
	}

	result := &Result{Splits: gold.Splits}
	for _, track := range tracks.Order {
		if cfg.Skip[track] {
			log.Info("track disabled, skipping", "track", track)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "run interrupted before %s track", track)
		}

		tlog := log.WithTrack(string(track))
		for _, split := range gold.Splits {
			if err := validate.Track(track, gold, staged.Dir, split); err != nil {
				return nil, err
			}

			written, err := runTrack(track, gold, staged.Dir, split, writer)
			if err != nil {
				return nil, err
			}
			tlog.WithSplit(string(split)).Info("track scored", "files", len(written))
			result.Written = append(result.Written, written...)
		}
	}

	return result, nil
}

// runTrack evaluates one (track, split) pair and writes every table the
// evaluator returns. The phonetic evaluator writes its own files because
// its outputs are stratified by ABX task rather than by table shape.
// meta.yaml is read only by the tracks whose parameters live in it: the
// semantic track requires it, the phonetic track falls back to the default
// frame shift without it, and the rest never read it.
func runTrack(track tracks.Track, gold dataset.Resolved, submission string,
	split dataset.Split, w *score.Writer) ([]score.Written, error) {

	s := string(split)
	switch track {
	case tracks.Lexical:
		byPair, byFrequency, byLength, err := lexical.Evaluate(
			gold.LexicalGold(split), dataset.LexicalSubmission(submission, split))
		if err != nil {
			return nil, err
		}
		return writeAll(w, []output{
			{byPair, score.Name("lexical", s, "by_pair")},
			{byFrequency, score.Name("lexical", s, "by_frequency")},
			{byLength, score.Name("lexical", s, "by_length")},
		})

	case tracks.Semantic:
		record, err := meta.Load(dataset.MetaFile(submission))
		if err != nil {
			return nil, err
		}
		metric, err := record.SemanticMetric()
		if err != nil {
			return nil, err
		}
		pooling, err := record.SemanticPooling()
		if err != nil {
			return nil, err
		}
		table, err := semantic.Evaluate(gold.SemanticGold(split), gold.SemanticPairs(split),
			dataset.SemanticSubmission(submission, split),
			semantic.Params{Metric: metric, Pooling: pooling})
		if err != nil {
			return nil, err
		}
		return writeAll(w, []output{{table, score.Name("semantic", s, "")}})

	case tracks.Syntactic:
		byPair, byType, err := syntactic.Evaluate(
			gold.SyntacticGold(split), dataset.SyntacticSubmission(submission, split))
		if err != nil {
			return nil, err
		}
		return writeAll(w, []output{
			{byPair, score.Name("syntactic", s, "by_pair")},
			{byType, score.Name("syntactic", s, "by_type")},
		})

	case tracks.Phonetic:
		// The frame shift is the only metadata this track reads, and it
		// has a default: a submission without a record still scores. A
		// malformed record stays fatal.
		frameShift := meta.DefaultFrameShift
		record, err := meta.Load(dataset.MetaFile(submission))
		switch {
		case err == nil:
			frameShift = record.PhoneticFrameShift()
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}

		subsets := make([]phonetic.Subset, 0, len(dataset.PhoneticSubsets()))
		for _, subset := range dataset.PhoneticSubsets() {
			subsets = append(subsets, phonetic.Subset{
				Name:       subset,
				ItemFile:   gold.PhoneticItem(split, subset),
				FeatureDir: dataset.PhoneticSubmission(submission, split, subset),
			})
		}
		return phonetic.Evaluate(subsets, frameShift, w, s)
	}

	return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown track %q", track)
}

type output struct {
	table *score.Table
	name  string
}

func writeAll(w *score.Writer, outputs []output) ([]score.Written, error) {
	written := make([]score.Written, 0, len(outputs))
	for _, out := range outputs {
		file, err := w.Write(out.table, out.name)
		if err != nil {
			return nil, err
		}
		written = append(written, file)
	}
	return written, nil
}
