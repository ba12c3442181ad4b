// Package syntactic scores a submission on syntactic minimal-pair
// acceptability: each gold pair couples a grammatical sentence with an
// ungrammatical counterpart of the same construction type, and the
// submission wins a pair when the grammatical member gets the higher
// pseudo-probability.
package syntactic

import (
	"gonum.org/v1/gonum/stat"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/score"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

// pair is one (id, voice) grammatical/ungrammatical pair from the gold
// table.
type pair struct {
	id    string
	voice string
	typ   string

	correctFile   string
	incorrectFile string
	score         float64
}

// Evaluate scores the submitted prediction table against the gold pair
// table for one split. It returns two stratifications: by item pair and by
// construction type.
func Evaluate(goldFile, submissionFile string) (byPair, byType *score.Table, err error) {
	pairs, err := loadPairs(goldFile)
	if err != nil {
		return nil, nil, err
	}

	predictions, err := tracks.ReadPredictions(submissionFile)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range pairs {
		correct, err := tracks.Score(predictions, submissionFile, p.correctFile)
		if err != nil {
			return nil, nil, err
		}
		incorrect, err := tracks.Score(predictions, submissionFile, p.incorrectFile)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case correct > incorrect:
			p.score = 1
		case correct == incorrect:
			p.score = 0.5
		}
	}

	return stratifyByPair(pairs), stratifyByType(pairs), nil
}

func loadPairs(goldFile string) ([]*pair, error) {
	gold, err := tracks.ReadGold(goldFile)
	if err != nil {
		return nil, err
	}

	byKey := make(map[[2]string]*pair)
	var ordered []*pair

	for _, row := range gold.Rows {
		filename, err := gold.Field(row, "filename")
		if err != nil {
			return nil, err
		}
		id, err := gold.Field(row, "id")
		if err != nil {
			return nil, err
		}
		voice, err := gold.Field(row, "voice")
		if err != nil {
			return nil, err
		}
		typ, err := gold.Field(row, "type")
		if err != nil {
			return nil, err
		}
		correct, err := gold.Field(row, "correct")
		if err != nil {
			return nil, err
		}

		key := [2]string{id, voice}
		p, ok := byKey[key]
		if !ok {
			p = &pair{id: id, voice: voice, typ: typ}
			byKey[key] = p
			ordered = append(ordered, p)
		}

		switch correct {
		case "1":
			if p.correctFile != "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput,
					"%s: duplicate grammatical entry for pair %s voice %s", goldFile, id, voice)
			}
			p.correctFile = filename
		case "0":
			if p.incorrectFile != "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput,
					"%s: duplicate ungrammatical entry for pair %s voice %s", goldFile, id, voice)
			}
			p.incorrectFile = filename
		default:
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s: bad correct flag %q for pair %s", goldFile, correct, id)
		}
	}

	for _, p := range ordered {
		if p.correctFile == "" || p.incorrectFile == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s: incomplete pair %s voice %s", goldFile, p.id, p.voice)
		}
	}

	return ordered, nil
}

// stratifyByPair aggregates voices of the same pair id, in gold order.
func stratifyByPair(pairs []*pair) *score.Table {
	table := score.NewTable("id", "type", "n", "score")

	type group struct {
		typ    string
		scores []float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, p := range pairs {
		g, ok := groups[p.id]
		if !ok {
			g = &group{typ: p.typ}
			groups[p.id] = g
			order = append(order, p.id)
		}
		g.scores = append(g.scores, p.score)
	}

	for _, id := range order {
		g := groups[id]
		table.AddRow(id, g.typ, len(g.scores), stat.Mean(g.scores, nil))
	}
	return table
}

// stratifyByType averages pair scores per construction type, types in
// gold order.
func stratifyByType(pairs []*pair) *score.Table {
	table := score.NewTable("type", "n", "score")

	groups := make(map[string][]float64)
	var order []string

	for _, p := range pairs {
		if _, ok := groups[p.typ]; !ok {
			order = append(order, p.typ)
		}
		groups[p.typ] = append(groups[p.typ], p.score)
	}

	for _, typ := range order {
		table.AddRow(typ, len(groups[typ]), stat.Mean(groups[typ], nil))
	}
	return table
}
