// Package validate performs structural checks on a submission against a
// resolved gold dataset: it verifies that the artifacts a scoring run
// would read are present and well-formed, without computing any score.
// The evaluation driver uses it to fail fast per track; the validate
// subcommand runs the full set up front.
package validate

import (
	"os"

	"github.com/zerospeech/zrc2021/internal/dataset"
	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/features"
	"github.com/zerospeech/zrc2021/internal/meta"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

// Track checks that both the gold and submission artifacts of one track
// exist for one split. A failure is a NotFoundError naming the first
// missing artifact.
func Track(track tracks.Track, gold dataset.Resolved, submission string, split dataset.Split) error {
	switch track {
	case tracks.Lexical:
		if err := requireFile("lexical gold file", gold.LexicalGold(split)); err != nil {
			return err
		}
		return requireFile("lexical submission file", dataset.LexicalSubmission(submission, split))

	case tracks.Syntactic:
		if err := requireFile("syntactic gold file", gold.SyntacticGold(split)); err != nil {
			return err
		}
		return requireFile("syntactic submission file", dataset.SyntacticSubmission(submission, split))

	case tracks.Semantic:
		if err := requireFile("semantic gold file", gold.SemanticGold(split)); err != nil {
			return err
		}
		if err := requireFile("semantic pairs file", gold.SemanticPairs(split)); err != nil {
			return err
		}
		return requireDir("semantic embedding directory", dataset.SemanticSubmission(submission, split))

	case tracks.Phonetic:
		for _, subset := range dataset.PhoneticSubsets() {
			if err := requireFile("phonetic item file", gold.PhoneticItem(split, subset)); err != nil {
				return err
			}
			dir := dataset.PhoneticSubmission(submission, split, subset)
			if err := requireDir("phonetic feature directory", dir); err != nil {
				return err
			}
			utterances, err := features.List(dir)
			if err != nil {
				return err
			}
			if len(utterances) == 0 {
				return errors.NewNotFoundError("phonetic feature files", dir).
					WithCause(errors.Wrap(errors.ErrInvalidInput, "directory holds no feature files"))
			}
		}
		return nil
	}

	return errors.Wrapf(errors.ErrInvalidInput, "unknown track %q", track)
}

// Submission checks every enabled track of a submission over the full
// split set, plus the submission metadata. Tracks mapped to true in skip
// are not checked. The metadata check also enforces that the semantic
// parameters are declared when the semantic track is enabled.
func Submission(gold dataset.Resolved, submission string, splits []dataset.Split, skip map[tracks.Track]bool) error {
	// The metadata record is required only by the semantic track: without
	// it, a missing file is tolerated but a malformed one is still an
	// error.
	m, err := meta.Load(dataset.MetaFile(submission))
	switch {
	case err == nil:
		if !skip[tracks.Semantic] {
			if _, err := m.SemanticMetric(); err != nil {
				return err
			}
			if _, err := m.SemanticPooling(); err != nil {
				return err
			}
		}
	case skip[tracks.Semantic] && errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	for _, track := range tracks.Order {
		if skip[track] {
			continue
		}
		for _, split := range splits {
			if err := Track(track, gold, submission, split); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireFile(kind, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewNotFoundError(kind, path).WithCause(err)
	}
	if info.IsDir() {
		return errors.NewNotFoundError(kind, path).
			WithCause(errors.Wrap(errors.ErrInvalidInput, "is a directory"))
	}
	return nil
}

func requireDir(kind, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewNotFoundError(kind, path).WithCause(err)
	}
	if !info.IsDir() {
		return errors.NewNotFoundError(kind, path).
			WithCause(errors.Wrap(errors.ErrInvalidInput, "not a directory"))
	}
	return nil
}
