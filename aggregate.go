package tableprofiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chop-dbhi/table-profiler/correlation"
	"github.com/chop-dbhi/table-profiler/profile"
	"github.com/chop-dbhi/table-profiler/table"
)

// kind-count buckets reported on every table summary.
var kindBuckets = []profile.Kind{
	profile.Numeric,
	profile.Date,
	profile.Constant,
	profile.Categorical,
	profile.Unique,
	profile.Correlated,
	profile.Recoded,
	profile.Boolean,
	profile.Unsupported,
}

// aggregate merges the per-column records into the unified profile:
// rejection overrides, the ordered statistic-name universe, frequency
// tables and the dataset-level summary.
func aggregate(t *table.Table, run *profile.Run, records map[string]*profile.Record, rejects map[string]correlation.Rejection, cfg *Config) *Result {
	applyRejections(records, rejects, cfg.overrides())

	res := &Result{
		Names:     nameUniverse(t, records),
		Variables: records,
		Freq:      make(map[string]*profile.Frequencies),
	}

	for _, c := range t.Columns {
		rec := records[c.Name]

		if rec.Kind() == profile.Unsupported {
			continue
		}

		if f := run.Frequencies(c); f != nil {
			res.Freq[c.Name] = f
		}
	}

	res.Table = tableStats(t, records)

	return res
}

// applyRejections replaces the record of every rejected column with a
// synthetic-kind record, unless the column is whitelisted.
func applyRejections(records map[string]*profile.Record, rejects map[string]correlation.Rejection, overrides map[string]struct{}) {
	for name, rej := range rejects {
		if _, ok := overrides[name]; ok {
			continue
		}

		if _, ok := records[name]; !ok {
			continue
		}

		kind := profile.Correlated
		if rej.Kind == profile.Recoded.String() {
			kind = profile.Recoded
		}

		rec := profile.NewRecord()
		rec.Set("type", kind)
		rec.Set("correlation_var", rej.With)
		rec.Set("correlation", rej.Value)

		records[name] = rec
	}
}

// nameUniverse builds the ordered set of statistic-name columns:
// records sorted by field count ascending (stable in table column
// order), then each record's names appended in order, skipping names
// already seen.
func nameUniverse(t *table.Table, records map[string]*profile.Record) []string {
	ordered := make([]*profile.Record, 0, len(records))

	for _, c := range t.Columns {
		if rec, ok := records[c.Name]; ok {
			ordered = append(ordered, rec)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Len() < ordered[j].Len()
	})

	var names []string

	seen := make(map[string]struct{})

	for _, rec := range ordered {
		for _, n := range rec.Names() {
			if _, ok := seen[n]; ok {
				continue
			}

			seen[n] = struct{}{}
			names = append(names, n)
		}
	}

	return names
}

// tableStats computes the dataset-level summary metrics.
func tableStats(t *table.Table, records map[string]*profile.Record) *profile.Record {
	n := t.NumRows()
	nvar := t.NumCols()

	rec := profile.NewRecord()
	rec.Set("n", n)
	rec.Set("nvar", nvar)

	var missing int

	for _, r := range records {
		if v, ok := r.Get("n_missing"); ok {
			if m, ok := v.(int); ok {
				missing += m
			}
		}
	}

	rec.Set("n_cells_missing", missing)

	if n > 0 && nvar > 0 {
		rec.Set("p_cells_missing", float64(missing)/float64(n*nvar))
	} else {
		rec.Set("p_cells_missing", float64(0))
	}

	// Duplicate rows are counted over supported columns only.
	var supported []*table.Column

	for _, c := range t.Columns {
		if r, ok := records[c.Name]; ok && r.Kind() != profile.Unsupported {
			supported = append(supported, c)
		}
	}

	dups := duplicateRows(supported, n)

	rec.Set("n_duplicates", dups)

	if len(supported) > 0 && n > 0 {
		rec.Set("p_duplicates", float64(dups)/float64(n))
	} else {
		rec.Set("p_duplicates", float64(0))
	}

	var memsize int64

	for _, r := range records {
		if v, ok := r.Get("memorysize"); ok {
			if m, ok := v.(int64); ok {
				memsize += m
			}
		}
	}

	rec.Set("memsize", memsize)

	if n > 0 {
		rec.Set("recordsize", float64(memsize)/float64(n))
	} else {
		rec.Set("recordsize", float64(0))
	}

	counts := make(map[profile.Kind]int)

	for _, r := range records {
		counts[r.Kind()]++
	}

	for _, k := range kindBuckets {
		rec.Set(k.String(), counts[k])
	}

	rejected := counts[profile.Constant] + counts[profile.Correlated] + counts[profile.Recoded]
	rec.Set("REJECTED", rejected)

	return rec
}

// duplicateRows counts rows beyond the first occurrence of each
// distinct row, projected onto the given columns. Zero when no columns
// are given.
func duplicateRows(cols []*table.Column, n int) int {
	if len(cols) == 0 || n == 0 {
		return 0
	}

	seen := make(map[string]struct{}, n)

	var (
		b    strings.Builder
		dups int
	)

	for i := 0; i < n; i++ {
		b.Reset()

		for _, c := range cols {
			fmt.Fprintf(&b, "%#v\x1f", c.Values[i])
		}

		key := b.String()

		if _, ok := seen[key]; ok {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}

	return dups
}
