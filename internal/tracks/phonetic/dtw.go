package phonetic

import "math"

// dtw returns the dynamic-time-warping distance between two frame
// sequences under the given frame distance, normalized by the length of
// the best alignment path so that fragments of different durations stay
// comparable.
func dtw(a, b [][]float64, dist func(x, y []float64) float64) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	cost := make([][]float64, n)
	length := make([][]int, n)
	for i := range cost {
		cost[i] = make([]float64, m)
		length[i] = make([]int, m)
	}

	cost[0][0] = dist(a[0], b[0])
	length[0][0] = 1
	for i := 1; i < n; i++ {
		cost[i][0] = cost[i-1][0] + dist(a[i], b[0])
		length[i][0] = i + 1
	}
	for j := 1; j < m; j++ {
		cost[0][j] = cost[0][j-1] + dist(a[0], b[j])
		length[0][j] = j + 1
	}

	for i := 1; i < n; i++ {
		for j := 1; j < m; j++ {
			d := dist(a[i], b[j])

			best := cost[i-1][j-1]
			bestLen := length[i-1][j-1]
			if cost[i-1][j] < best {
				best = cost[i-1][j]
				bestLen = length[i-1][j]
			}
			if cost[i][j-1] < best {
				best = cost[i][j-1]
				bestLen = length[i][j-1]
			}

			cost[i][j] = best + d
			length[i][j] = bestLen + 1
		}
	}

	return cost[n-1][m-1] / float64(length[n-1][m-1])
}
