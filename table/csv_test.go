package table

import (
	"strings"
	"testing"
)

func TestFromCSV(t *testing.T) {
	in := strings.NewReader("ID,Amount,Label\n1,1.5,a\n2,,b\n3,2.5,\n")

	tb, err := FromCSV(in, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if tb.NumCols() != 3 || tb.NumRows() != 3 {
		t.Fatalf("expected 3x3 table, got %dx%d", tb.NumRows(), tb.NumCols())
	}

	// Header names are lowercased.
	for i, name := range []string{"id", "amount", "label"} {
		if tb.Columns[i].Name != name {
			t.Errorf("expected column %s, got %s", name, tb.Columns[i].Name)
		}
	}

	if v := tb.Column("id").Values[0]; v != int64(1) {
		t.Errorf("expected int64(1), got %v (%T)", v, v)
	}

	if v := tb.Column("amount").Values[0]; v != 1.5 {
		t.Errorf("expected 1.5, got %v (%T)", v, v)
	}

	// Empty cells are null.
	if v := tb.Column("amount").Values[1]; v != nil {
		t.Errorf("expected null, got %v (%T)", v, v)
	}

	if v := tb.Column("label").Values[2]; v != nil {
		t.Errorf("expected null, got %v (%T)", v, v)
	}
}

func TestFromCSVNoHeader(t *testing.T) {
	in := strings.NewReader("1;x\n2;y\n")

	opts := &CSVOptions{
		Delimiter: ';',
	}

	tb, err := FromCSV(in, opts)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if tb.NumRows() != 2 {
		t.Errorf("expected 2 rows, got %d", tb.NumRows())
	}

	if tb.Columns[0].Name != "c0" || tb.Columns[1].Name != "c1" {
		t.Errorf("expected generated names, got %s, %s", tb.Columns[0].Name, tb.Columns[1].Name)
	}
}

func TestFromLDJSON(t *testing.T) {
	in := strings.NewReader(`{"a": 1, "b": "x"}

{"a": 2.5, "b": "y", "c": true}
{"a": 3}
`)

	tb, err := FromLDJSON(in)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if tb.NumCols() != 3 || tb.NumRows() != 3 {
		t.Fatalf("expected 3x3 table, got %dx%d", tb.NumRows(), tb.NumCols())
	}

	// Late fields are backfilled, absent fields padded.
	c := tb.Column("c")

	if c.Values[0] != nil || c.Values[1] != true || c.Values[2] != nil {
		t.Errorf("expected [nil true nil], got %v", c.Values)
	}

	b := tb.Column("b")

	if b.Values[2] != nil {
		t.Errorf("expected padded null, got %v", b.Values[2])
	}
}

func TestFromJSON(t *testing.T) {
	in := strings.NewReader(`[{"n": 1, "s": "a"}, {"n": 2, "s": "b"}]`)

	tb, err := FromJSON(in)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if tb.NumCols() != 2 || tb.NumRows() != 2 {
		t.Fatalf("expected 2x2 table, got %dx%d", tb.NumRows(), tb.NumCols())
	}

	if v := tb.Column("n").Values[1]; v != int64(2) {
		t.Errorf("expected int64(2), got %v (%T)", v, v)
	}
}
