package perplex

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ErrBadCSV is returned when a perplexity csv file cannot be read back.
var ErrBadCSV = errors.New("bad perplexity csv")

// Row is one line of the csv output.
type Row struct {
	Position   int     `csv:"Position"`
	Perplexity float64 `csv:"Perplexity"`
}

// Rows numbers the profile from 1.
func (p Profile) Rows() []Row {
	rows := make([]Row, len(p))
	for i, v := range p {
		rows[i] = Row{Position: i + 1, Perplexity: v}
	}
	return rows
}

// WriteCSV writes a header line, then position and perplexity for
// each site.
func WriteCSV(w io.Writer, p Profile) error {
	if err := gocsv.Marshal(p.Rows(), w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// ReadCSV reads what WriteCSV wrote. Positions must start at 1 and
// follow each other without gaps.
func ReadCSV(r io.Reader) (Profile, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCSV, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadCSV)
	}
	p := make(Profile, len(rows))
	for i, row := range rows {
		if row.Position != i+1 {
			return nil, fmt.Errorf("%w: row %d has position %d", ErrBadCSV, i+1, row.Position)
		}
		p[i] = row.Perplexity
	}
	return p, nil
}
