package phonetic

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// Item is one triphone occurrence from an ABX item file: a time span of a
// source utterance, the phoneme it realizes, its immediate phonetic
// context and the speaker.
type Item struct {
	File   string
	Onset  float64
	Offset float64

	Phone   string
	Prev    string
	Next    string
	Speaker string
}

// readItems parses an ABX item file. Lines starting with # are headers or
// comments; data lines hold `file onset offset phone prev next speaker`.
func readItems(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError("item file", path).WithCause(err)
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 7 {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s:%d: expected 7 fields, got %d", path, line, len(fields))
		}

		onset, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad onset %q", path, line, fields[1])
		}
		offset, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad offset %q", path, line, fields[2])
		}
		if offset <= onset {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s:%d: offset %v not after onset %v", path, line, offset, onset)
		}

		items = append(items, Item{
			File:    fields[0],
			Onset:   onset,
			Offset:  offset,
			Phone:   fields[3],
			Prev:    fields[4],
			Next:    fields[5],
			Speaker: fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(items) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s: no items", path)
	}

	return items, nil
}
