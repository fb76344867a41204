// Package correlation computes variable-by-variable association
// matrices and derives over-threshold rejections from them. It treats
// the table read-only and can run concurrently with per-column
// description.
package correlation

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/chop-dbhi/table-profiler/table"
)

// Matrix is a labeled square association matrix.
type Matrix struct {
	Names []string
	data  *mat.Dense
}

// NewMatrix allocates an n-by-n matrix for the named variables, filled
// with NaN. Returns nil when no variables are given; consumers treat a
// nil matrix as empty.
func NewMatrix(names []string) *Matrix {
	n := len(names)
	if n == 0 {
		return nil
	}

	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, math.NaN())
		}
	}

	return &Matrix{
		Names: names,
		data:  d,
	}
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

func (m *Matrix) set(i, j int, v float64) {
	m.data.Set(i, j, v)
	m.data.Set(j, i, v)
}

// ByName returns the association between two named variables.
func (m *Matrix) ByName(a, b string) (float64, bool) {
	i := m.index(a)
	j := m.index(b)

	if i < 0 || j < 0 {
		return 0, false
	}

	return m.data.At(i, j), true
}

func (m *Matrix) index(name string) int {
	for i, n := range m.Names {
		if n == name {
			return i
		}
	}

	return -1
}

func (m *Matrix) MarshalJSON() ([]byte, error) {
	n := len(m.Names)

	rows := make([][]interface{}, n)
	for i := 0; i < n; i++ {
		row := make([]interface{}, n)
		for j := 0; j < n; j++ {
			v := m.data.At(i, j)
			if math.IsNaN(v) {
				row[j] = nil
			} else {
				row[j] = v
			}
		}
		rows[i] = row
	}

	return json.Marshal(map[string]interface{}{
		"names":  m.Names,
		"values": rows,
	})
}

func (m *Matrix) MarshalYAML() (interface{}, error) {
	n := len(m.Names)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.data.At(i, j)
		}
	}

	return map[string]interface{}{
		"names":  m.Names,
		"values": rows,
	}, nil
}

// Matrices bundles the collaborator output consumed by the
// aggregation step. Recoded is nil unless the recoded check ran.
type Matrices struct {
	Pearson  *Matrix `json:"pearson"`
	Spearman *Matrix `json:"spearman"`
	Cramers  *Matrix `json:"cramers"`
	Recoded  *Matrix `json:"recoded,omitempty"`
}

// Rejection marks a column as redundant because of its association
// with an earlier column.
type Rejection struct {
	Kind  string  `json:"type"`
	With  string  `json:"correlation_var"`
	Value float64 `json:"correlation"`
}

// OverThreshold walks each row up to the diagonal and rejects the row
// variable when the predicate matches its association with any earlier
// variable; the earliest variable of a correlated group survives.
func OverThreshold(m *Matrix, kind string, pred func(float64) bool) map[string]Rejection {
	out := make(map[string]Rejection)

	if m == nil {
		return out
	}

	for i := range m.Names {
		for j := 0; j < i; j++ {
			v := m.At(i, j)

			if math.IsNaN(v) || !pred(v) {
				continue
			}

			out[m.Names[i]] = Rejection{
				Kind:  kind,
				With:  m.Names[j],
				Value: v,
			}
		}
	}

	return out
}

// numericSeries is a column projected to float64 with NaN for missing.
type numericSeries struct {
	name string
	xs   []float64
}

func numericColumns(t *table.Table) []numericSeries {
	var out []numericSeries

	for _, c := range t.Columns {
		switch c.MachineType() {
		case table.IntType, table.FloatType:
		default:
			continue
		}

		xs := make([]float64, len(c.Values))

		for i, v := range c.Values {
			if table.IsMissing(v) {
				xs[i] = math.NaN()
				continue
			}

			switch x := table.Coerce(v, table.FloatType).(type) {
			case float64:
				xs[i] = x
			default:
				xs[i] = math.NaN()
			}
		}

		out = append(out, numericSeries{name: c.Name, xs: xs})
	}

	return out
}

type stringSeries struct {
	name string
	vals []string // "" marks missing
}

// categoricalColumns projects string and bool columns to label series;
// bools become "true"/"false" levels.
func categoricalColumns(t *table.Table) []stringSeries {
	var out []stringSeries

	for _, c := range t.Columns {
		switch c.MachineType() {
		case table.StringType, table.BoolType:
		default:
			continue
		}

		vals := make([]string, len(c.Values))

		for i, v := range c.Values {
			switch x := v.(type) {
			case string:
				vals[i] = x
			case bool:
				vals[i] = strconv.FormatBool(x)
			}
		}

		out = append(out, stringSeries{name: c.Name, vals: vals})
	}

	return out
}

// pairComplete filters two series down to rows where both are
// observed.
func pairComplete(a, b []float64) ([]float64, []float64) {
	var xs, ys []float64

	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}

		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}

	return xs, ys
}

// Pearson computes the pairwise-complete Pearson correlation matrix
// over the table's numeric columns.
func Pearson(t *table.Table) *Matrix {
	cols := numericColumns(t)

	m := NewMatrix(numericNames(cols))

	for i := range cols {
		m.set(i, i, 1)

		for j := 0; j < i; j++ {
			xs, ys := pairComplete(cols[i].xs, cols[j].xs)

			if len(xs) < 2 {
				continue
			}

			m.set(i, j, stat.Correlation(xs, ys, nil))
		}
	}

	return m
}

// Spearman computes the rank correlation matrix: values are replaced
// by average ranks within each pairwise-complete subset, then
// correlated.
func Spearman(t *table.Table) *Matrix {
	cols := numericColumns(t)

	m := NewMatrix(numericNames(cols))

	for i := range cols {
		m.set(i, i, 1)

		for j := 0; j < i; j++ {
			xs, ys := pairComplete(cols[i].xs, cols[j].xs)

			if len(xs) < 2 {
				continue
			}

			m.set(i, j, stat.Correlation(ranks(xs), ranks(ys), nil))
		}
	}

	return m
}

// ranks assigns average ranks, ties sharing the mean of their rank
// span.
func ranks(xs []float64) []float64 {
	n := len(xs)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.Slice(idx, func(a, b int) bool {
		return xs[idx[a]] < xs[idx[b]]
	})

	out := make([]float64, n)

	for i := 0; i < n; {
		j := i
		for j+1 < n && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}

		// Average rank for the tie group spanning i..j (1-based).
		avg := float64(i+j)/2 + 1

		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}

		i = j + 1
	}

	return out
}

// CramersV computes the Cramér's V association matrix over the
// table's categorical columns.
func CramersV(t *table.Table) *Matrix {
	cols := categoricalColumns(t)

	m := NewMatrix(stringNames(cols))

	for i := range cols {
		m.set(i, i, 1)

		for j := 0; j < i; j++ {
			m.set(i, j, cramersV(cols[i].vals, cols[j].vals))
		}
	}

	return m
}

func cramersV(a, b []string) float64 {
	counts := make(map[string]map[string]float64)
	rowTotals := make(map[string]float64)
	colTotals := make(map[string]float64)

	var n float64

	for i := range a {
		if a[i] == "" || b[i] == "" {
			continue
		}

		row, ok := counts[a[i]]
		if !ok {
			row = make(map[string]float64)
			counts[a[i]] = row
		}

		row[b[i]]++
		rowTotals[a[i]]++
		colTotals[b[i]]++
		n++
	}

	r := len(rowTotals)
	c := len(colTotals)

	k := r
	if c < k {
		k = c
	}

	if n == 0 || k < 2 {
		return math.NaN()
	}

	var chi2 float64

	for av, rt := range rowTotals {
		for bv, ct := range colTotals {
			expected := rt * ct / n
			observed := counts[av][bv]

			d := observed - expected
			chi2 += d * d / expected
		}
	}

	return math.Sqrt(chi2 / (n * float64(k-1)))
}

// Recoded computes a 0/1 matrix marking categorical column pairs that
// are bijective recodings of each other: each value of one maps to
// exactly one value of the other, both ways.
func Recoded(t *table.Table) *Matrix {
	cols := categoricalColumns(t)

	m := NewMatrix(stringNames(cols))

	for i := range cols {
		m.set(i, i, 1)

		for j := 0; j < i; j++ {
			if recoded(cols[i].vals, cols[j].vals) {
				m.set(i, j, 1)
			} else {
				m.set(i, j, 0)
			}
		}
	}

	return m
}

func recoded(a, b []string) bool {
	fwd := make(map[string]string)
	rev := make(map[string]string)

	seen := false

	for i := range a {
		if a[i] == "" || b[i] == "" {
			continue
		}

		seen = true

		if prev, ok := fwd[a[i]]; ok && prev != b[i] {
			return false
		}

		if prev, ok := rev[b[i]]; ok && prev != a[i] {
			return false
		}

		fwd[a[i]] = b[i]
		rev[b[i]] = a[i]
	}

	return seen
}

func numericNames(cols []numericSeries) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

func stringNames(cols []stringSeries) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}
