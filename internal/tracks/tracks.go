// Package tracks defines the four evaluation tracks and their fixed
// execution order. Each track's evaluator lives in its own sub-package
// and is a pure, deterministic function of gold and submission artifacts.
package tracks

// Track is one of the four independent evaluation dimensions.
type Track string

const (
	Phonetic  Track = "phonetic"
	Lexical   Track = "lexical"
	Syntactic Track = "syntactic"
	Semantic  Track = "semantic"
)

// Order is the fixed execution order of the driver loop. Tracks do not
// share state, so the order is an implementation convenience, not a
// correctness requirement.
var Order = []Track{Lexical, Semantic, Syntactic, Phonetic}

// String returns the track name.
func (t Track) String() string {
	return string(t)
}
