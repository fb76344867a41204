package profile

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/chop-dbhi/table-profiler/table"
)

// FreqEntry is one distinct value and its occurrence count.
type FreqEntry struct {
	Value interface{} `json:"value"`
	Count int         `json:"count"`
}

// Frequencies is the value-count distribution of a column's
// non-missing values, ordered by descending count with ties broken by
// first appearance in the column.
type Frequencies struct {
	Entries       []FreqEntry
	DistinctCount int
}

// Top returns the most frequent value and its count. ok is false for
// an empty distribution.
func (f *Frequencies) Top() (interface{}, int, bool) {
	if len(f.Entries) == 0 {
		return nil, 0, false
	}

	return f.Entries[0].Value, f.Entries[0].Count, true
}

func (f *Frequencies) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"entries":        f.Entries,
		"distinct_count": f.DistinctCount,
	})
}

func (f *Frequencies) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"entries":        f.Entries,
		"distinct_count": f.DistinctCount,
	}, nil
}

func newFrequencies(values []interface{}) *Frequencies {
	counts := make(map[interface{}]int)

	var order []interface{}

	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	f := &Frequencies{
		Entries:       make([]FreqEntry, 0, len(order)),
		DistinctCount: len(order),
	}

	for _, v := range order {
		f.Entries = append(f.Entries, FreqEntry{Value: v, Count: counts[v]})
	}

	// Stable sort by descending count keeps first-seen order for ties.
	sort.SliceStable(f.Entries, func(i, j int) bool {
		return f.Entries[i].Count > f.Entries[j].Count
	})

	return f
}

// columnStats is the per-column working set computed once per run and
// shared by Classify and the describers.
type columnStats struct {
	col     *table.Column
	length  int
	missing int
	inf     int
	machine table.ValueType

	// Non-missing values coerced to the column's machine type.
	values []interface{}

	freq *Frequencies
}

func (s *columnStats) count() int {
	return len(s.values)
}

// zeroOnePair reports whether the distinct values are exactly the
// integers 0 and 1, a boolean-like encoding.
func (s *columnStats) zeroOnePair() bool {
	if s.freq.DistinctCount != 2 {
		return false
	}

	var seen0, seen1 bool

	for _, e := range s.freq.Entries {
		switch e.Value {
		case int64(0):
			seen0 = true
		case int64(1):
			seen1 = true
		}
	}

	return seen0 && seen1
}

func newColumnStats(c *table.Column) *columnStats {
	s := &columnStats{
		col:     c,
		length:  c.Len(),
		machine: c.MachineType(),
	}

	for _, v := range c.Values {
		if table.IsInfinite(v) {
			s.inf++
		}

		if table.IsMissing(v) {
			s.missing++
			continue
		}

		s.values = append(s.values, table.Coerce(v, s.machine))
	}

	// Object cells (slices, maps) are not hashable; the column is
	// unsupported and gets no frequency table.
	if s.machine == table.ObjectType {
		s.freq = &Frequencies{}
	} else {
		s.freq = newFrequencies(s.values)
	}

	return s
}

// Run scopes the per-column cache to a single profiling run. A fresh
// Run must be constructed for every run; nothing is shared across
// runs.
type Run struct {
	// Bins is the histogram resolution used by the numeric and date
	// describers.
	Bins int

	mu    sync.Mutex
	cache map[string]*columnStats
}

func NewRun() *Run {
	return &Run{
		Bins:  10,
		cache: make(map[string]*columnStats),
	}
}

// stats returns the cached working set for a column, computing it on
// first use. Safe for concurrent use; each column is normally visited
// by a single worker, so contention is limited to the map.
func (r *Run) stats(c *table.Column) *columnStats {
	r.mu.Lock()
	s, ok := r.cache[c.Name]
	r.mu.Unlock()

	if ok {
		return s
	}

	s = newColumnStats(c)

	r.mu.Lock()
	if prev, ok := r.cache[c.Name]; ok {
		s = prev
	} else {
		r.cache[c.Name] = s
	}
	r.mu.Unlock()

	return s
}

// Frequencies returns the cached value-count table for a column, or
// nil for an unsupported one.
func (r *Run) Frequencies(c *table.Column) *Frequencies {
	s := r.stats(c)

	if s.machine == table.ObjectType || s.count() == 0 {
		return nil
	}

	return s.freq
}
