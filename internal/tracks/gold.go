package tracks

import (
	"encoding/csv"
	"os"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// GoldFile is a parsed gold reference table: a header row and data rows in
// file order.
type GoldFile struct {
	path    string
	columns map[string]int
	Rows    [][]string
}

// ReadGold parses a delimited gold table with a header row.
func ReadGold(path string) (*GoldFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError("gold file", path).WithCause(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing gold file %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%s: empty gold file", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}

	return &GoldFile{path: path, columns: columns, Rows: records[1:]}, nil
}

// Field returns the named column of a row, failing when the gold schema
// lacks the column.
func (g *GoldFile) Field(row []string, column string) (string, error) {
	idx, ok := g.columns[column]
	if !ok {
		return "", errors.Wrapf(errors.ErrInvalidInput,
			"%s: gold file has no %q column", g.path, column)
	}
	return row[idx], nil
}
