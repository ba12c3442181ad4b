package features

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CosineDistance returns 1 - cos(a, b). Zero vectors are maximally
// distant from everything, including each other.
func CosineDistance(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}

	cos := floats.Dot(a, b) / (na * nb)
	// Guard against rounding drifting outside [-1, 1].
	cos = math.Max(-1, math.Min(1, cos))
	return 1 - cos
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// AngularDistance returns the normalized angle between a and b in [0, 1].
// It is the frame metric used by the phonetic ABX computation: unlike raw
// cosine distance it is a proper metric on the unit sphere.
func AngularDistance(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}

	cos := floats.Dot(a, b) / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) / math.Pi
}
