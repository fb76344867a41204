package table

import (
	"math"
	"testing"
	"time"
)

func assertMachineType(t *testing.T, e, a ValueType) {
	t.Helper()

	if e != a {
		t.Errorf("expected %s, got %s", e, a)
	}
}

func TestColumnMachineType(t *testing.T) {
	tests := map[string]struct {
		Values []interface{}
		Type   ValueType
	}{
		"ints": {
			[]interface{}{int64(1), int64(2)},
			IntType,
		},
		"ints-and-floats": {
			[]interface{}{int64(1), 2.5},
			FloatType,
		},
		"bools-and-ints": {
			[]interface{}{true, int64(2)},
			IntType,
		},
		"strings": {
			[]interface{}{"a", "b"},
			StringType,
		},
		"strings-with-nulls": {
			[]interface{}{"a", nil, "b"},
			StringType,
		},
		"mixed": {
			[]interface{}{"a", int64(1)},
			ObjectType,
		},
		"bools-and-dates": {
			[]interface{}{true, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			ObjectType,
		},
		"all-null": {
			[]interface{}{nil, nil},
			NullType,
		},
		"nan-only": {
			[]interface{}{math.NaN(), nil},
			NullType,
		},
		"dates-and-datetimes": {
			[]interface{}{
				time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC),
			},
			DateTimeType,
		},
		"objects": {
			[]interface{}{[]interface{}{1}, nil},
			ObjectType,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Column{Name: "test", Values: test.Values}
			assertMachineType(t, test.Type, c.MachineType())
		})
	}
}

func TestGeneralizeType(t *testing.T) {
	assertMachineType(t, FloatType, GeneralizeType(IntType, FloatType))
	assertMachineType(t, IntType, GeneralizeType(IntType, BoolType))
	assertMachineType(t, StringType, GeneralizeType(StringType, BoolType))
	assertMachineType(t, DateTimeType, GeneralizeType(DateTimeType, DateType))
	assertMachineType(t, IntType, GeneralizeType(NullType, IntType))
}

func TestTableValidate(t *testing.T) {
	tb := New()
	tb.AddColumn("x", []interface{}{int64(1), int64(2)})
	tb.AddColumn("y", []interface{}{"a", "b"})

	if err := tb.Validate(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	tb.AddColumn("z", []interface{}{"only one"})

	if err := tb.Validate(); err == nil {
		t.Error("expected ragged table to fail validation")
	}

	tb = New()
	tb.AddColumn("x", []interface{}{int64(1)})
	tb.AddColumn("x", []interface{}{int64(2)})

	if err := tb.Validate(); err == nil {
		t.Error("expected duplicate names to fail validation")
	}
}

func TestTableResetIndex(t *testing.T) {
	tb := New()
	tb.AddColumn("x", []interface{}{int64(1), int64(2)})

	// Default index is dropped.
	tb.Index = []interface{}{int64(0), int64(1)}
	tb.ResetIndex()

	if tb.NumCols() != 1 {
		t.Errorf("expected default index to be dropped, got %d columns", tb.NumCols())
	}

	// A non-default index becomes the leading column.
	tb.Index = []interface{}{"r1", "r2"}
	tb.ResetIndex()

	if tb.NumCols() != 2 {
		t.Fatalf("expected index column, got %d columns", tb.NumCols())
	}

	if tb.Columns[0].Name != "index" {
		t.Errorf("expected leading index column, got %s", tb.Columns[0].Name)
	}
}
