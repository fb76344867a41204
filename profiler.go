// Package tableprofiler computes a statistical profile of an
// in-memory rectangular table: per-column descriptive statistics
// dispatched on a semantic variable kind, correlation-based redundancy
// rejection, and dataset-level aggregate metrics.
package tableprofiler

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/chop-dbhi/table-profiler/correlation"
	"github.com/chop-dbhi/table-profiler/profile"
	"github.com/chop-dbhi/table-profiler/table"
)

// Config controls a profiling run. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// CheckCorrelation enables the correlation collaborator and the
	// over-threshold rejection pass.
	CheckCorrelation bool

	// CorrelationThreshold is the absolute association above which a
	// column is rejected as redundant.
	CorrelationThreshold float64

	// CorrelationOverrides lists column names exempt from rejection.
	CorrelationOverrides []string

	// CheckRecoded enables the expensive recoded-pair check. Only
	// meaningful when CheckCorrelation is set.
	CheckRecoded bool

	// PoolSize is the number of per-column workers. Does not affect
	// results; columns are joined by name, not arrival order.
	PoolSize int

	// Bins is the histogram resolution.
	Bins int
}

func DefaultConfig() *Config {
	return &Config{
		CheckCorrelation:     true,
		CorrelationThreshold: 0.9,
		PoolSize:             runtime.NumCPU(),
		Bins:                 10,
	}
}

func (c *Config) overrides() map[string]struct{} {
	m := make(map[string]struct{}, len(c.CorrelationOverrides))

	for _, n := range c.CorrelationOverrides {
		m[n] = struct{}{}
	}

	return m
}

// Profile computes the statistical profile of a table. All records are
// computed fresh; nothing is cached across runs. The input table is
// not mutated.
func Profile(t *table.Table, cfg *Config) (*Result, error) {
	if t == nil {
		return nil, invalidInput("table is nil")
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := t.Validate(); err != nil {
		return nil, invalidInput("%s", err)
	}

	// A table with no columns degenerates to an empty profile.
	if t.NumCols() == 0 && t.Index == nil {
		return emptyResult(), nil
	}

	// Work on a shallow copy so index reset never mutates the caller.
	t = &table.Table{
		Columns: append([]*table.Column(nil), t.Columns...),
		Index:   t.Index,
	}
	t.ResetIndex()

	if t.NumRows() == 0 {
		return nil, invalidInput("table has no rows")
	}

	run := profile.NewRun()
	if cfg.Bins > 0 {
		run.Bins = cfg.Bins
	}

	// The correlation step examines the whole table without mutating
	// it, so it runs alongside the per-column fan-out.
	var (
		corr    *correlation.Matrices
		rejects map[string]correlation.Rejection

		corrWG sync.WaitGroup
	)

	if cfg.CheckCorrelation {
		corrWG.Add(1)

		go func() {
			defer corrWG.Done()
			corr, rejects = correlate(t, cfg)
		}()
	}

	records := describeColumns(t, run, cfg.PoolSize)

	corrWG.Wait()

	res := aggregate(t, run, records, rejects, cfg)
	res.RunID = uuid.NewString()
	res.Correlations = corr

	return res, nil
}

func emptyResult() *Result {
	rec := profile.NewRecord()
	rec.Set("n", 0)
	rec.Set("nvar", 0)

	return &Result{
		RunID:     uuid.NewString(),
		Table:     rec,
		Variables: make(map[string]*profile.Record),
		Freq:      make(map[string]*profile.Frequencies),
	}
}

// describeColumns fans classify+describe over a worker pool and joins
// the results by column name.
func describeColumns(t *table.Table, run *profile.Run, poolSize int) map[string]*profile.Record {
	if poolSize < 1 {
		poolSize = 1
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	records := make(map[string]*profile.Record, t.NumCols())
	cols := make(chan *table.Column)

	for i := 0; i < poolSize; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for c := range cols {
				rec := describeColumn(run, c)

				mu.Lock()
				records[c.Name] = rec
				mu.Unlock()
			}
		}()
	}

	for _, c := range t.Columns {
		cols <- c
	}
	close(cols)

	wg.Wait()

	return records
}

// describeColumn isolates per-column failures: a panic degrades the
// column to unsupported with a captured note instead of crashing the
// run.
func describeColumn(run *profile.Run, c *table.Column) (rec *profile.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = profile.ErrorRecord(fmt.Sprintf("%v", r))
		}
	}()

	kind := run.Classify(c)

	return run.Describe(c, kind)
}

// correlate runs the correlation collaborator and derives the
// rejection set. Pearson and Cramér's V rejections use the absolute
// threshold; recoded pairs reject on any hit.
func correlate(t *table.Table, cfg *Config) (*correlation.Matrices, map[string]correlation.Rejection) {
	m := &correlation.Matrices{
		Pearson:  correlation.Pearson(t),
		Spearman: correlation.Spearman(t),
		Cramers:  correlation.CramersV(t),
	}

	if cfg.CheckRecoded {
		m.Recoded = correlation.Recoded(t)
	}

	over := func(v float64) bool {
		return math.Abs(v) > cfg.CorrelationThreshold
	}

	rejects := correlation.OverThreshold(m.Pearson, profile.Correlated.String(), over)

	for name, rej := range correlation.OverThreshold(m.Cramers, profile.Correlated.String(), over) {
		rejects[name] = rej
	}

	if m.Recoded != nil {
		hit := func(v float64) bool {
			return v != 0
		}

		for name, rej := range correlation.OverThreshold(m.Recoded, profile.Recoded.String(), hit) {
			rejects[name] = rej
		}
	}

	return m, rejects
}
