// Package features reads the frame-level feature and embedding artifacts
// exchanged with the track evaluators: plain text files holding one
// whitespace-delimited float vector per line.
package features

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// ReadMatrix parses a feature file into a frame-major matrix. Every line
// must hold the same number of columns; blank lines are ignored.
func ReadMatrix(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError("feature file", path).WithCause(err)
	}
	defer f.Close()

	var frames [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		frame := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d: bad value %q", path, line, field)
			}
			frame[i] = v
		}

		if len(frames) > 0 && len(frame) != len(frames[0]) {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"%s:%d: %d columns, expected %d", path, line, len(frame), len(frames[0]))
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(frames) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s: empty feature file", path)
	}

	return frames, nil
}

// List returns the names (without the .txt extension) of the feature files
// in dir, sorted for reproducible iteration order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewNotFoundError("feature directory", dir).WithCause(err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".txt" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)

	return names, nil
}
