package semantic

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/meta"
)

// Poolings supported for collapsing a token's frames into one embedding.
const (
	PoolMin  = "min"
	PoolMax  = "max"
	PoolMean = "mean"
	PoolSum  = "sum"
	PoolLast = "last"
)

// ValidPoolings lists the accepted parameters.semantic.pooling values.
func ValidPoolings() []string {
	return []string{PoolMin, PoolMax, PoolMean, PoolSum, PoolLast}
}

// Pool collapses a frame-major matrix into a single vector using the given
// pooling strategy.
func Pool(frames [][]float64, pooling string) ([]float64, error) {
	if len(frames) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "pooling over zero frames")
	}

	dim := len(frames[0])
	switch pooling {
	case PoolLast:
		out := make([]float64, dim)
		copy(out, frames[len(frames)-1])
		return out, nil

	case PoolSum, PoolMean:
		out := make([]float64, dim)
		for _, frame := range frames {
			floats.Add(out, frame)
		}
		if pooling == PoolMean {
			floats.Scale(1/float64(len(frames)), out)
		}
		return out, nil

	case PoolMin, PoolMax:
		out := make([]float64, dim)
		copy(out, frames[0])
		for _, frame := range frames[1:] {
			for i, v := range frame {
				if pooling == PoolMin {
					out[i] = math.Min(out[i], v)
				} else {
					out[i] = math.Max(out[i], v)
				}
			}
		}
		return out, nil

	default:
		return nil, errors.NewMetadataError(meta.FileName, "parameters.semantic.pooling").
			WithCause(errors.Wrapf(errors.ErrInvalidInput, "unknown pooling %q", pooling))
	}
}
