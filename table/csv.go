package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVOptions controls how CSV input is read into a table.
type CSVOptions struct {
	// Delimiter between fields. Defaults to ','.
	Delimiter rune

	// Header indicates the first record holds column names. When
	// false, columns are named c0..cN-1.
	Header bool
}

// DefaultCSVOptions mirrors the common case: comma separated with a
// header row.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter: ',',
		Header:    true,
	}
}

// FromCSV reads CSV data into a table. Cells are parsed into the most
// specific machine type; empty cells become null.
func FromCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	first, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	names := make([]string, len(first))
	for i, n := range first {
		if opts.Header {
			names[i] = strings.ToLower(strings.TrimSpace(n))
		} else {
			names[i] = fmt.Sprintf("c%d", i)
		}
	}

	cols := make([][]interface{}, len(names))

	appendRecord := func(record []string) {
		for i := range names {
			cols[i] = append(cols[i], ParseValue(record[i]))
		}
	}

	if !opts.Header {
		appendRecord(first)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read record: %w", err)
		}

		appendRecord(record)
	}

	t := New()

	for i, name := range names {
		t.AddColumn(name, cols[i])
	}

	return t, nil
}
