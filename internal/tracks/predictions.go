package tracks

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// ReadPredictions parses a submitted prediction table: one `<item> <score>`
// line per gold item, whitespace-delimited, no header.
func ReadPredictions(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError("submission file", path).WithCause(err)
	}
	defer f.Close()

	scores := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s:%d: expected `<item> <score>`, got %q", path, line, text)
		}

		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad score %q", path, line, fields[1])
		}
		if _, dup := scores[fields[0]]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s:%d: duplicate item %q", path, line, fields[0])
		}
		scores[fields[0]] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return scores, nil
}

// Score looks up the predicted score of an item, failing when the
// submission omits it.
func Score(scores map[string]float64, path, item string) (float64, error) {
	v, ok := scores[item]
	if !ok {
		return 0, errors.Wrapf(errors.ErrInvalidInput,
			"%s: no predicted score for item %q", path, item)
	}
	return v, nil
}
