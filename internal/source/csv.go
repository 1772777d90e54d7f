// Package source parses the external tabular inputs: delimiter-separated
// site and context tables, and the energy profiles workbook.
package source

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the table parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	SkipRows   int  // preamble rows discarded before the header (LEAD exports carry 8)
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// Table is a parsed tabular source: a header plus data rows. Column
// lookup is case-insensitive.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// ReadCSV parses a delimiter-separated source into a Table. The first
// row after any skipped preamble is the header. Rows may have variable
// field counts; short rows read as empty cells.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	skipped := 0
	var t Table
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "source: read csv row")
		}

		if skipped < opts.SkipRows {
			skipped++
			continue
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if t.Header == nil {
			t.Header = record
			continue
		}
		t.Rows = append(t.Rows, record)
	}

	if t.Header == nil {
		return nil, eris.New("source: csv has no header row")
	}

	t.colIdx = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return &t, nil
}

// Col returns the index of the named column, case-insensitively.
func (t *Table) Col(name string) (int, bool) {
	idx, ok := t.colIdx[strings.ToLower(name)]
	return idx, ok
}

// Cell returns row[idx], or "" when the row is shorter than idx+1.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
