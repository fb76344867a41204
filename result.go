package tableprofiler

import (
	"github.com/chop-dbhi/table-profiler/correlation"
	"github.com/chop-dbhi/table-profiler/profile"
)

// Result is the full output of one profiling run.
type Result struct {
	// RunID uniquely identifies the run for report artifacts.
	RunID string `json:"run_id" yaml:"run_id"`

	// Table holds the dataset-level summary metrics.
	Table *profile.Record `json:"table" yaml:"table"`

	// Names is the ordered statistic-name universe: the column order
	// of the aggregated column-by-statistic matrix.
	Names []string `json:"names" yaml:"names"`

	// Variables maps column name to its statistic record.
	Variables map[string]*profile.Record `json:"variables" yaml:"variables"`

	// Freq maps column name to its value-count table. Unsupported
	// columns are absent.
	Freq map[string]*profile.Frequencies `json:"freq" yaml:"freq"`

	// Correlations is nil when correlation checking is disabled.
	Correlations *correlation.Matrices `json:"correlations,omitempty" yaml:"correlations,omitempty"`
}
