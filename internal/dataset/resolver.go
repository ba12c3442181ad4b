// Package dataset resolves which gold reference data a run is scored
// against. A run normally scores the public dev split only; organizers
// provide an out-of-band gold location that both adds the held-out test
// split and replaces the gold root, so the same binary serves participants
// and official scoring.
package dataset

import (
	"os"
	"path/filepath"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// Split is a named subset of gold data.
type Split string

// The two splits used by the challenge. Participants only ever see Dev;
// Test gold data is supplied out-of-band by the organizers.
const (
	Dev  Split = "dev"
	Test Split = "test"
)

// Options are the inputs to split and gold-root resolution. TestGold, when
// non-empty, is the organizer-provided gold location: it adds the test
// split and replaces Root wholesale (not merged).
type Options struct {
	Root     string
	TestGold string
}

// Resolved is the outcome of resolution: an absolute, existing gold root
// and the ordered split set in scope for the run.
type Resolved struct {
	Root   string
	Splits []Split
}

// Resolve derives the split set and gold root for a run. It is a pure
// function of opts: callers read the organizer override from the
// environment and pass it in explicitly.
//
// Fails with a validation error if the effective root does not exist or is
// not a directory.
func Resolve(opts Options) (Resolved, error) {
	splits := []Split{Dev}
	root := opts.Root

	if opts.TestGold != "" {
		splits = append(splits, Test)
		root = opts.TestGold
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Resolved{}, errors.NewValidationError("cannot resolve dataset path").
			WithPath(root).WithCause(err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Resolved{}, errors.NewValidationError("dataset not found").
			WithPath(abs).WithCause(err)
	}
	if !info.IsDir() {
		return Resolved{}, errors.NewValidationError("dataset is not a directory").
			WithPath(abs)
	}

	return Resolved{Root: abs, Splits: splits}, nil
}

// Gold-side locations, one sub-tree per track under the resolved root.

// LexicalGold returns the lexical gold table for a split.
func (r Resolved) LexicalGold(split Split) string {
	return filepath.Join(r.Root, "lexical", string(split), "gold.csv")
}

// SyntacticGold returns the syntactic gold table for a split.
func (r Resolved) SyntacticGold(split Split) string {
	return filepath.Join(r.Root, "syntactic", string(split), "gold.csv")
}

// SemanticGold returns the semantic similarity gold table for a split.
func (r Resolved) SemanticGold(split Split) string {
	return filepath.Join(r.Root, "semantic", string(split), "gold.csv")
}

// SemanticPairs returns the semantic token-pairing table for a split.
func (r Resolved) SemanticPairs(split Split) string {
	return filepath.Join(r.Root, "semantic", string(split), "pairs.csv")
}

// PhoneticABX returns the directory holding the ABX item files. It is
// shared across splits; item files inside it are named per split subset.
func (r Resolved) PhoneticABX() string {
	return filepath.Join(r.Root, "phonetic", "abx_features")
}

// PhoneticItem returns the ABX item file for a (split, subset) pair,
// e.g. dev-clean.item.
func (r Resolved) PhoneticItem(split Split, subset string) string {
	return filepath.Join(r.PhoneticABX(), string(split)+"-"+subset+".item")
}

// Submission-side locations, relative to a staged submission root.

// LexicalSubmission returns the lexical prediction table for a split.
func LexicalSubmission(root string, split Split) string {
	return filepath.Join(root, "lexical", string(split)+".txt")
}

// SyntacticSubmission returns the syntactic prediction table for a split.
func SyntacticSubmission(root string, split Split) string {
	return filepath.Join(root, "syntactic", string(split)+".txt")
}

// SemanticSubmission returns the embedding directory for a split.
func SemanticSubmission(root string, split Split) string {
	return filepath.Join(root, "semantic", string(split))
}

// PhoneticSubmission returns the feature directory for a (split, subset)
// pair, e.g. phonetic/dev-clean.
func PhoneticSubmission(root string, split Split, subset string) string {
	return filepath.Join(root, "phonetic", string(split)+"-"+subset)
}

// MetaFile returns the submission-wide metadata record.
func MetaFile(root string) string {
	return filepath.Join(root, "meta.yaml")
}

// PhoneticSubsets lists the per-split evaluation subsets of the phonetic
// track, in output order.
func PhoneticSubsets() []string {
	return []string{"clean", "other"}
}
