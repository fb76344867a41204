package table

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// jsonRows accumulates flat objects into columns, padding columns with
// nulls so every column stays the same length.
type jsonRows struct {
	names []string
	cols  map[string][]interface{}
	rows  int
}

func newJSONRows() *jsonRows {
	return &jsonRows{
		cols: make(map[string][]interface{}),
	}
}

func (j *jsonRows) add(m map[string]interface{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, err := jsonValue(m[k])
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}

		col, ok := j.cols[k]
		if !ok {
			j.names = append(j.names, k)
			// Backfill rows seen before this field appeared.
			col = make([]interface{}, j.rows)
		}

		j.cols[k] = append(col, v)
	}

	j.rows++

	// Pad fields absent from this record.
	for _, n := range j.names {
		if len(j.cols[n]) < j.rows {
			j.cols[n] = append(j.cols[n], nil)
		}
	}

	return nil
}

func (j *jsonRows) table() *Table {
	t := New()

	for _, n := range j.names {
		t.AddColumn(n, j.cols[n])
	}

	return t
}

// jsonValue converts a decoded JSON value to a cell value. Nested
// objects and arrays are not flattened; they surface as ObjectType
// cells and the column degrades to unsupported.
func jsonValue(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil

	case bool:
		return x, nil

	case string:
		if x == "" {
			return nil, nil
		}

		if d, ok := ParseDate(x); ok {
			return d, nil
		}

		if d, ok := ParseDateTime(x); ok {
			return d, nil
		}

		return x, nil

	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}

		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number: %s", x.String())
		}

		return f, nil

	case map[string]interface{}, []interface{}:
		return x, nil
	}

	return nil, fmt.Errorf("unsupported value: %T", v)
}

// FromJSON reads a JSON array of flat objects into a table. Column
// order is the first-seen field order, fields within a record visited
// in sorted key order.
func FromJSON(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	if tok != json.Delim('[') {
		return nil, fmt.Errorf("json: expected array, got: %v", tok)
	}

	rows := newJSONRows()

	for dec.More() {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}

		if err := rows.add(m); err != nil {
			return nil, err
		}
	}

	return rows.table(), nil
}

// FromLDJSON reads line-delimited JSON objects into a table. Blank
// lines are skipped.
func FromLDJSON(r io.Reader) (*Table, error) {
	s := bufio.NewScanner(r)

	rows := newJSONRows()

	var b bytes.Buffer
	dec := json.NewDecoder(&b)
	dec.UseNumber()

	for s.Scan() {
		line := bytes.TrimSpace(s.Bytes())
		if len(line) == 0 {
			continue
		}

		b.Reset()
		b.Write(line)

		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("ldjson: %w", err)
		}

		if err := rows.add(m); err != nil {
			return nil, err
		}
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("ldjson: %w", err)
	}

	return rows.table(), nil
}
