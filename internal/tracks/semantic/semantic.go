// Package semantic scores a submission on semantic similarity: pooled
// embeddings of spoken word tokens are compared pairwise, and the model's
// distances are correlated with human similarity judgments per dataset.
package semantic

import (
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/features"
	"github.com/zerospeech/zrc2021/internal/meta"
	"github.com/zerospeech/zrc2021/internal/score"
	"github.com/zerospeech/zrc2021/internal/tracks"
)

// Metrics supported for comparing pooled embeddings.
const (
	MetricCosine    = "cosine"
	MetricEuclidean = "euclidean"
)

// ValidMetrics lists the accepted parameters.semantic.metric values.
func ValidMetrics() []string {
	return []string{MetricCosine, MetricEuclidean}
}

// Params are the submission-level semantic parameters, read once from the
// submission metadata. Both values are required; they are validated before
// any scoring begins.
type Params struct {
	Metric  string
	Pooling string
}

// Evaluate scores the submitted embeddings against the gold similarity
// table for one split. goldFile holds human similarity judgments, pairsFile
// maps each word to its spoken token files under embeddingDir, one
// sub-directory per corpus type.
//
// It returns one table: the Pearson correlation between gold similarity
// and the negated model distance, per (type, dataset) group.
func Evaluate(goldFile, pairsFile, embeddingDir string, params Params) (*score.Table, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tokens, err := loadTokens(pairsFile)
	if err != nil {
		return nil, err
	}

	gold, err := tracks.ReadGold(goldFile)
	if err != nil {
		return nil, err
	}

	pooled := newPooledCache(embeddingDir, params.Pooling)

	type group struct {
		similarities []float64
		model        []float64
	}
	groups := make(map[[2]string]*group)
	var order [][2]string

	for _, row := range gold.Rows {
		typ, err := gold.Field(row, "type")
		if err != nil {
			return nil, err
		}
		ds, err := gold.Field(row, "dataset")
		if err != nil {
			return nil, err
		}
		word1, err := gold.Field(row, "word_1")
		if err != nil {
			return nil, err
		}
		word2, err := gold.Field(row, "word_2")
		if err != nil {
			return nil, err
		}
		simField, err := gold.Field(row, "similarity")
		if err != nil {
			return nil, err
		}
		similarity, err := parseFloat(goldFile, simField)
		if err != nil {
			return nil, err
		}

		distance, err := wordDistance(pooled, tokens, params.Metric, typ, word1, word2)
		if err != nil {
			return nil, err
		}

		key := [2]string{typ, ds}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.similarities = append(g.similarities, similarity)
		// Negate so that higher model similarity sorts with higher gold
		// similarity.
		g.model = append(g.model, -distance)
	}

	table := score.NewTable("type", "dataset", "n", "correlation")
	for _, key := range order {
		g := groups[key]
		table.AddRow(key[0], key[1], len(g.similarities),
			stat.Correlation(g.similarities, g.model, nil))
	}
	return table, nil
}

func (p Params) validate() error {
	switch p.Metric {
	case MetricCosine, MetricEuclidean:
	default:
		return errors.NewMetadataError(meta.FileName, "parameters.semantic.metric").
			WithCause(errors.Wrapf(errors.ErrInvalidInput, "unknown metric %q", p.Metric))
	}

	// Pooling values are checked by Pool; validate eagerly so the failure
	// happens before any embedding is read.
	if _, err := Pool([][]float64{{0}}, p.Pooling); err != nil {
		return err
	}
	return nil
}

// loadTokens parses the pairing table mapping each (type, word) to its
// spoken token files.
func loadTokens(pairsFile string) (map[[2]string][]string, error) {
	pairs, err := tracks.ReadGold(pairsFile)
	if err != nil {
		return nil, err
	}

	tokens := make(map[[2]string][]string)
	for _, row := range pairs.Rows {
		typ, err := pairs.Field(row, "type")
		if err != nil {
			return nil, err
		}
		word, err := pairs.Field(row, "word")
		if err != nil {
			return nil, err
		}
		filename, err := pairs.Field(row, "filename")
		if err != nil {
			return nil, err
		}
		key := [2]string{typ, word}
		tokens[key] = append(tokens[key], filename)
	}
	return tokens, nil
}

// pooledCache loads and pools each token embedding at most once. All
// embeddings of a run must agree on dimension; the first loaded file sets
// it.
type pooledCache struct {
	dir     string
	pooling string
	cache   map[string][]float64
	dim     int
}

func newPooledCache(dir, pooling string) *pooledCache {
	return &pooledCache{dir: dir, pooling: pooling, cache: make(map[string][]float64)}
}

func (c *pooledCache) get(typ, filename string) ([]float64, error) {
	key := typ + "/" + filename
	if v, ok := c.cache[key]; ok {
		return v, nil
	}

	frames, err := features.ReadMatrix(filepath.Join(c.dir, typ, filename))
	if err != nil {
		return nil, err
	}
	v, err := Pool(frames, c.pooling)
	if err != nil {
		return nil, err
	}

	if c.dim == 0 {
		c.dim = len(v)
	} else if len(v) != c.dim {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"embedding %s has dimension %d, other embeddings have %d", key, len(v), c.dim)
	}

	c.cache[key] = v
	return v, nil
}

// wordDistance averages the metric distance over every token pair of the
// two words.
func wordDistance(pooled *pooledCache, tokens map[[2]string][]string, metric, typ, word1, word2 string) (float64, error) {
	tokens1 := tokens[[2]string{typ, word1}]
	tokens2 := tokens[[2]string{typ, word2}]
	if len(tokens1) == 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "no tokens for word %q in type %q", word1, typ)
	}
	if len(tokens2) == 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "no tokens for word %q in type %q", word2, typ)
	}

	var total float64
	for _, t1 := range tokens1 {
		v1, err := pooled.get(typ, t1)
		if err != nil {
			return 0, err
		}
		for _, t2 := range tokens2 {
			v2, err := pooled.get(typ, t2)
			if err != nil {
				return 0, err
			}
			switch metric {
			case MetricCosine:
				total += features.CosineDistance(v1, v2)
			case MetricEuclidean:
				total += features.EuclideanDistance(v1, v2)
			}
		}
	}
	return total / float64(len(tokens1)*len(tokens2)), nil
}

func parseFloat(file, field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: bad similarity %q", file, field)
	}
	return v, nil
}
