// Package profile implements the per-column statistical core: semantic
// kind classification, frequency tables and kind-dispatched describers.
package profile

import (
	"encoding/json"

	"github.com/chop-dbhi/table-profiler/table"
)

const (
	Unsupported Kind = iota
	Constant
	Boolean
	Numeric
	Date
	Unique
	Categorical

	// Synthetic kinds assigned by the aggregation step when a column
	// is rejected as redundant. Never produced by Classify.
	Correlated
	Recoded
)

// Kind is the semantic classification of a column, distinct from its
// machine type. The set is closed; describers dispatch on it
// exhaustively.
type Kind uint8

func (k Kind) String() string {
	switch k {
	case Unsupported:
		return "UNSUPPORTED"
	case Constant:
		return "CONST"
	case Boolean:
		return "BOOL"
	case Numeric:
		return "NUM"
	case Date:
		return "DATE"
	case Unique:
		return "UNIQUE"
	case Categorical:
		return "CAT"
	case Correlated:
		return "CORR"
	case Recoded:
		return "RECODED"
	}

	return ""
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Rejected reports whether the kind excludes the column from the
// supported aggregate counts.
func (k Kind) Rejected() bool {
	return k == Constant || k == Correlated || k == Recoded
}

// Classify assigns a column its semantic kind. First match wins:
//
//  1. no non-missing values        -> Unsupported
//  2. mixed incompatible types     -> Unsupported
//  3. one distinct value           -> Constant
//  4. boolean or a {0,1} pair      -> Boolean
//  5. integer or float             -> Numeric
//  6. date or datetime             -> Date
//  7. every value distinct         -> Unique
//  8. otherwise                    -> Categorical
//
// Classification is a pure function of the column's values; infinite
// floats are normalized to missing beforehand. Results are cached on
// the run, so re-classifying within one run is free and idempotent.
func (r *Run) Classify(c *table.Column) Kind {
	s := r.stats(c)

	if s.count() == 0 {
		return Unsupported
	}

	if s.machine == table.ObjectType {
		return Unsupported
	}

	if s.freq.DistinctCount == 1 {
		return Constant
	}

	if s.machine == table.BoolType || s.zeroOnePair() {
		return Boolean
	}

	switch s.machine {
	case table.IntType, table.FloatType:
		return Numeric
	case table.DateType, table.DateTimeType:
		return Date
	}

	if s.freq.DistinctCount == s.length {
		return Unique
	}

	return Categorical
}
