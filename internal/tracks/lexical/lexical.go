// Package lexical scores a submission on lexical minimal-pair
// distinguishability: each gold pair couples a real word with a matched
// nonword, and the submission wins a pair when it assigns the word the
// higher pseudo-probability.
package lexical

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/score"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

// pair is one (id, voice) word/nonword minimal pair from the gold table.
type pair struct {
	id        string
	voice     string
	word      string
	frequency string
	length    int

	wordFile    string
	nonwordFile string
	score       float64
}

// Evaluate scores the submitted prediction table against the gold pair
// table for one split. It returns three stratifications of the same pair
// scores: by item pair, by frequency bucket, by word length.
func Evaluate(goldFile, submissionFile string) (byPair, byFrequency, byLength *score.Table, err error) {
	pairs, err := loadPairs(goldFile)
	if err != nil {
		return nil, nil, nil, err
	}

	predictions, err := tracks.ReadPredictions(submissionFile)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, p := range pairs {
		wordScore, err := tracks.Score(predictions, submissionFile, p.wordFile)
		if err != nil {
			return nil, nil, nil, err
		}
		nonwordScore, err := tracks.Score(predictions, submissionFile, p.nonwordFile)
		if err != nil {
			return nil, nil, nil, err
		}

		switch {
		case wordScore > nonwordScore:
			p.score = 1
		case wordScore == nonwordScore:
			p.score = 0.5
		}
	}

	return stratifyByPair(pairs), stratifyByFrequency(pairs), stratifyByLength(pairs), nil
}

// loadPairs reads the gold table and assembles (id, voice) pairs in first
// appearance order. Every pair must have exactly one word row (correct=1)
// and one nonword row (correct=0).
func loadPairs(goldFile string) ([]*pair, error) {
	gold, err := tracks.ReadGold(goldFile)
	if err != nil {
		return nil, err
	}

	byKey := make(map[[2]string]*pair)
	var ordered []*pair

	for _, row := range gold.Rows {
		fields, err := readRow(gold, row)
		if err != nil {
			return nil, err
		}

		key := [2]string{fields.id, fields.voice}
		p, ok := byKey[key]
		if !ok {
			p = &pair{id: fields.id, voice: fields.voice}
			byKey[key] = p
			ordered = append(ordered, p)
		}

		switch fields.correct {
		case "1":
			if p.wordFile != "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput,
					"%s: duplicate word entry for pair %s voice %s", goldFile, fields.id, fields.voice)
			}
			p.wordFile = fields.filename
			p.word = fields.word
			p.frequency = fields.frequency
			if p.length, err = strconv.Atoi(fields.length); err != nil {
				return nil, errors.Wrapf(err, "%s: bad length for pair %s", goldFile, fields.id)
			}
		case "0":
			if p.nonwordFile != "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput,
					"%s: duplicate nonword entry for pair %s voice %s", goldFile, fields.id, fields.voice)
			}
			p.nonwordFile = fields.filename
		default:
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s: bad correct flag %q for pair %s", goldFile, fields.correct, fields.id)
		}
	}

	for _, p := range ordered {
		if p.wordFile == "" || p.nonwordFile == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s: incomplete pair %s voice %s", goldFile, p.id, p.voice)
		}
	}

	return ordered, nil
}

// goldRow is one parsed line of the lexical gold table.
type goldRow struct {
	filename  string
	id        string
	voice     string
	frequency string
	word      string
	length    string
	correct   string
}

func readRow(gold *tracks.GoldFile, row []string) (goldRow, error) {
	var r goldRow
	var err error

	if r.filename, err = gold.Field(row, "filename"); err != nil {
		return r, err
	}
	if r.id, err = gold.Field(row, "id"); err != nil {
		return r, err
	}
	if r.voice, err = gold.Field(row, "voice"); err != nil {
		return r, err
	}
	if r.frequency, err = gold.Field(row, "frequency"); err != nil {
		return r, err
	}
	if r.word, err = gold.Field(row, "word"); err != nil {
		return r, err
	}
	if r.length, err = gold.Field(row, "length"); err != nil {
		return r, err
	}
	if r.correct, err = gold.Field(row, "correct"); err != nil {
		return r, err
	}
	return r, nil
}

// stratifyByPair aggregates voices of the same pair id, in gold order.
func stratifyByPair(pairs []*pair) *score.Table {
	table := score.NewTable("id", "word", "frequency", "length", "n", "score")

	type group struct {
		word      string
		frequency string
		length    int
		scores    []float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, p := range pairs {
		g, ok := groups[p.id]
		if !ok {
			g = &group{word: p.word, frequency: p.frequency, length: p.length}
			groups[p.id] = g
			order = append(order, p.id)
		}
		g.scores = append(g.scores, p.score)
	}

	for _, id := range order {
		g := groups[id]
		table.AddRow(id, g.word, g.frequency, g.length, len(g.scores), stat.Mean(g.scores, nil))
	}
	return table
}

// stratifyByFrequency averages pair scores per frequency bucket, buckets
// in gold order.
func stratifyByFrequency(pairs []*pair) *score.Table {
	table := score.NewTable("frequency", "n", "score")

	groups := make(map[string][]float64)
	var order []string

	for _, p := range pairs {
		if _, ok := groups[p.frequency]; !ok {
			order = append(order, p.frequency)
		}
		groups[p.frequency] = append(groups[p.frequency], p.score)
	}

	for _, freq := range order {
		table.AddRow(freq, len(groups[freq]), stat.Mean(groups[freq], nil))
	}
	return table
}

// stratifyByLength averages pair scores per word length, ascending.
func stratifyByLength(pairs []*pair) *score.Table {
	table := score.NewTable("length", "n", "score")

	groups := make(map[int][]float64)
	for _, p := range pairs {
		groups[p.length] = append(groups[p.length], p.score)
	}

	lengths := make([]int, 0, len(groups))
	for length := range groups {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)

	for _, length := range lengths {
		table.AddRow(length, len(groups[length]), stat.Mean(groups[length], nil))
	}
	return table
}
