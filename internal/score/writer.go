package score

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// Writer serializes score tables into an output directory. The directory
// is written incrementally and never read back; re-running the pipeline
// overwrites prior files of the same name unconditionally.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on
// the first write if absent.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the output directory, failing with a validation error
// if it cannot be created.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.NewValidationError("cannot create output directory").
			WithPath(w.dir).WithCause(err)
	}
	return nil
}

// Written describes one score file produced by a run.
type Written struct {
	// Path is the absolute or caller-relative location of the file.
	Path string
	// Name is the canonical file name (see Name).
	Name string
	// Rows is the number of data rows, excluding the header.
	Rows int
}

// Write serializes the table under the given canonical name, header row
// first then rows in the table's order, comma-delimited, with no trailing
// index column. An existing file of the same name is truncated.
func (w *Writer) Write(t *Table, name string) (Written, error) {
	if err := w.EnsureDir(); err != nil {
		return Written{}, err
	}

	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return Written{}, errors.Wrapf(err, "creating score file %s", path)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		f.Close()
		return Written{}, errors.Wrapf(err, "writing header of %s", path)
	}
	for _, row := range t.Rows() {
		if err := cw.Write(row); err != nil {
			f.Close()
			return Written{}, errors.Wrapf(err, "writing row of %s", path)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return Written{}, errors.Wrapf(err, "flushing %s", path)
	}
	if err := f.Close(); err != nil {
		return Written{}, errors.Wrapf(err, "closing %s", path)
	}

	return Written{Path: path, Name: name, Rows: t.Len()}, nil
}
