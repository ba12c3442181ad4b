package phonetic

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/zerospeech/zrc2021/internal/errors"
	"github.com/zerospeech/zrc2021/internal/features"
)

// Scores are the ABX error rates of one evaluation subset, averaged over
// discrimination cells. 0 is perfect discriminability, 0.5 is chance.
type Scores struct {
	Within int // number of within-speaker cells
	Across int // number of across-speaker cells

	WithinError float64
	AcrossError float64
}

// fragment is an item's frame slice plus its grouping attributes.
type fragment struct {
	frames  [][]float64
	phone   string
	context string // prev and next phone
	speaker string
}

// computeABX scores the discriminability of the submitted representations
// over the given items. frames maps an utterance name to its full feature
// matrix; frameShift converts item times to frame indexes.
//
// A within-speaker cell fixes a phonetic context, a speaker and an ordered
// phone pair (A, B); its error is the fraction of (a, b, x) triples with a
// and x realizing A and b realizing B for which x ends up closer to b than
// to a under DTW-aligned angular distance. Across-speaker cells draw x
// from a different speaker than a and b. The subset error is the
// unweighted mean over cells.
func computeABX(items []Item, frames map[string][][]float64, frameShift float64) (Scores, error) {
	fragments := make([]fragment, 0, len(items))
	for _, item := range items {
		full, ok := frames[item.File]
		if !ok {
			return Scores{}, errors.NewNotFoundError("feature matrix", item.File)
		}

		cut, err := cutFragment(full, item, frameShift)
		if err != nil {
			return Scores{}, err
		}
		fragments = append(fragments, fragment{
			frames:  cut,
			phone:   item.Phone,
			context: item.Prev + "+" + item.Next,
			speaker: item.Speaker,
		})
	}

	within := cellErrors(fragments, withinCells(fragments))
	across := cellErrors(fragments, acrossCells(fragments))

	scores := Scores{Within: len(within), Across: len(across)}
	if len(within) > 0 {
		scores.WithinError = stat.Mean(within, nil)
	}
	if len(across) > 0 {
		scores.AcrossError = stat.Mean(across, nil)
	}
	return scores, nil
}

// cutFragment slices the item's time span out of the utterance matrix.
func cutFragment(full [][]float64, item Item, frameShift float64) ([][]float64, error) {
	start := int(item.Onset/frameShift + 0.5)
	end := int(item.Offset/frameShift + 0.5)
	if start < 0 {
		start = 0
	}
	if end > len(full) {
		end = len(full)
	}
	if end <= start {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"item %s [%v, %v) is outside the %d-frame feature matrix",
			item.File, item.Onset, item.Offset, len(full))
	}
	return full[start:end], nil
}

// cell is one ABX discrimination task: indexes of the A, B and X sets.
type cell struct {
	a []int
	b []int
	x []int
}

// withinCells builds cells with A, B and X drawn from one speaker and one
// context: X shares A's phone, so x is drawn from A's set minus the
// current a.
func withinCells(fragments []fragment) []cell {
	byBase := make(map[string]map[string][]int) // context|speaker -> phone -> indexes
	for i, f := range fragments {
		base := f.context + "|" + f.speaker
		if byBase[base] == nil {
			byBase[base] = make(map[string][]int)
		}
		byBase[base][f.phone] = append(byBase[base][f.phone], i)
	}

	var cells []cell
	for _, base := range sortedKeys(byBase) {
		phones := byBase[base]
		for _, phoneA := range sortedKeys(phones) {
			for _, phoneB := range sortedKeys(phones) {
				if phoneA == phoneB || len(phones[phoneA]) < 2 {
					continue
				}
				cells = append(cells, cell{a: phones[phoneA], b: phones[phoneB], x: phones[phoneA]})
			}
		}
	}
	return cells
}

// acrossCells builds cells where a and b share a speaker while x realizes
// A's phone spoken by a different speaker, context held fixed.
func acrossCells(fragments []fragment) []cell {
	type speakerPhones map[string]map[string][]int // speaker -> phone -> indexes
	byContext := make(map[string]speakerPhones)
	for i, f := range fragments {
		if byContext[f.context] == nil {
			byContext[f.context] = make(speakerPhones)
		}
		if byContext[f.context][f.speaker] == nil {
			byContext[f.context][f.speaker] = make(map[string][]int)
		}
		byContext[f.context][f.speaker][f.phone] = append(byContext[f.context][f.speaker][f.phone], i)
	}

	var cells []cell
	for _, context := range sortedKeys(byContext) {
		speakers := byContext[context]
		for _, speakerAB := range sortedKeys(speakers) {
			phones := speakers[speakerAB]
			for _, speakerX := range sortedKeys(speakers) {
				if speakerX == speakerAB {
					continue
				}
				for _, phoneA := range sortedKeys(phones) {
					xSet := speakers[speakerX][phoneA]
					if len(xSet) == 0 {
						continue
					}
					for _, phoneB := range sortedKeys(phones) {
						if phoneA == phoneB {
							continue
						}
						cells = append(cells, cell{a: phones[phoneA], b: phones[phoneB], x: xSet})
					}
				}
			}
		}
	}
	return cells
}

// cellErrors scores every cell: the mean over its (a, b, x) triples of the
// indicator that x is closer to b than to a, counting ties half.
func cellErrors(fragments []fragment, cells []cell) []float64 {
	distances := newDistanceCache(fragments)

	var out []float64
	for _, c := range cells {
		var total float64
		var count int
		for _, a := range c.a {
			for _, b := range c.b {
				for _, x := range c.x {
					if x == a {
						continue
					}
					da := distances.get(a, x)
					db := distances.get(b, x)
					switch {
					case da > db:
						total++
					case da == db:
						total += 0.5
					}
					count++
				}
			}
		}
		if count > 0 {
			out = append(out, total/float64(count))
		}
	}
	return out
}

// distanceCache memoizes DTW distances between fragments; the distance is
// symmetric so pairs are keyed in canonical order.
type distanceCache struct {
	fragments []fragment
	cache     map[[2]int]float64
}

func newDistanceCache(fragments []fragment) *distanceCache {
	return &distanceCache{fragments: fragments, cache: make(map[[2]int]float64)}
}

func (d *distanceCache) get(i, j int) float64 {
	if j < i {
		i, j = j, i
	}
	key := [2]int{i, j}
	if v, ok := d.cache[key]; ok {
		return v
	}

	v := dtw(d.fragments[i].frames, d.fragments[j].frames, features.AngularDistance)
	d.cache[key] = v
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
