package tableprofiler

import (
	"testing"

	"github.com/chop-dbhi/table-profiler/profile"
	"github.com/chop-dbhi/table-profiler/table"
)

func noCorrConfig() *Config {
	cfg := DefaultConfig()
	cfg.CheckCorrelation = false
	return cfg
}

func TestProfile(t *testing.T) {
	tb := table.New()
	tb.AddColumn("id", []interface{}{int64(1), int64(2), int64(3)})
	tb.AddColumn("name", []interface{}{"a", "b", "a"})

	res, err := Profile(tb, noCorrConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if res.RunID == "" {
		t.Error("expected a run id")
	}

	if n, _ := res.Table.Get("n"); n != 3 {
		t.Errorf("expected n 3, got %v", n)
	}

	if n, _ := res.Table.Get("nvar"); n != 2 {
		t.Errorf("expected nvar 2, got %v", n)
	}

	if n, _ := res.Table.Get("n_cells_missing"); n != 0 {
		t.Errorf("expected 0 missing cells, got %v", n)
	}

	if res.Variables["id"].Kind() != profile.Numeric {
		t.Errorf("expected id NUM, got %s", res.Variables["id"].Kind())
	}

	if res.Variables["name"].Kind() != profile.Categorical {
		t.Errorf("expected name CAT, got %s", res.Variables["name"].Kind())
	}

	if n, _ := res.Table.Get("NUM"); n != 1 {
		t.Errorf("expected 1 numeric variable, got %v", n)
	}

	if n, _ := res.Table.Get("REJECTED"); n != 0 {
		t.Errorf("expected 0 rejected, got %v", n)
	}

	if _, ok := res.Freq["name"]; !ok {
		t.Error("expected a frequency table for name")
	}

	if len(res.Names) == 0 {
		t.Error("expected a statistic-name universe")
	}

	if res.Correlations != nil {
		t.Error("expected no correlation matrices")
	}
}

func TestProfileInvalidInput(t *testing.T) {
	if _, err := Profile(nil, nil); err == nil {
		t.Error("expected error for nil table")
	}

	tb := table.New()
	tb.AddColumn("x", []interface{}{})

	if _, err := Profile(tb, noCorrConfig()); err == nil {
		t.Error("expected error for empty table")
	}

	tb = table.New()
	tb.AddColumn("x", []interface{}{int64(1), int64(2)})
	tb.AddColumn("y", []interface{}{int64(1)})

	if _, err := Profile(tb, noCorrConfig()); err == nil {
		t.Error("expected error for ragged table")
	}
}

func TestProfileEmptyTable(t *testing.T) {
	res, err := Profile(table.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if n, _ := res.Table.Get("n"); n != 0 {
		t.Errorf("expected n 0, got %v", n)
	}

	if n, _ := res.Table.Get("nvar"); n != 0 {
		t.Errorf("expected nvar 0, got %v", n)
	}

	if len(res.Variables) != 0 {
		t.Errorf("expected no variables, got %d", len(res.Variables))
	}
}

func TestProfileDuplicates(t *testing.T) {
	tb := table.New()
	tb.AddColumn("x", []interface{}{int64(1), int64(1), int64(2)})
	tb.AddColumn("y", []interface{}{"a", "a", "b"})

	res, err := Profile(tb, noCorrConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if n, _ := res.Table.Get("n_duplicates"); n != 1 {
		t.Errorf("expected 1 duplicate row, got %v", n)
	}

	if p, _ := res.Table.Get("p_duplicates"); p != 1.0/3.0 {
		t.Errorf("expected p_duplicates 1/3, got %v", p)
	}
}

func TestProfileCorrelationRejection(t *testing.T) {
	tb := table.New()
	tb.AddColumn("x", []interface{}{1.0, 2.0, 3.0, 4.0, 5.0})
	tb.AddColumn("y", []interface{}{2.0, 4.0, 6.0, 8.0, 10.0})

	res, err := Profile(tb, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// y is a linear function of x; the later column is rejected.
	if res.Variables["x"].Kind() != profile.Numeric {
		t.Errorf("expected x to survive, got %s", res.Variables["x"].Kind())
	}

	y := res.Variables["y"]

	if y.Kind() != profile.Correlated {
		t.Fatalf("expected y CORR, got %s", y.Kind())
	}

	if v, _ := y.Get("correlation_var"); v != "x" {
		t.Errorf("expected correlation_var x, got %v", v)
	}

	if n, _ := res.Table.Get("CORR"); n != 1 {
		t.Errorf("expected 1 correlated variable, got %v", n)
	}

	if n, _ := res.Table.Get("REJECTED"); n != 1 {
		t.Errorf("expected 1 rejected variable, got %v", n)
	}

	if res.Correlations == nil || res.Correlations.Pearson == nil {
		t.Fatal("expected correlation matrices")
	}

	// No categorical columns, so no association matrix for them.
	if res.Correlations.Cramers != nil {
		t.Error("expected no Cramers matrix for an all-numeric table")
	}
}

func TestProfileCorrelationAllCategorical(t *testing.T) {
	tb := table.New()
	tb.AddColumn("a", []interface{}{"x", "y", "x"})
	tb.AddColumn("b", []interface{}{"p", "p", "q"})

	cfg := DefaultConfig()
	cfg.CheckRecoded = true

	res, err := Profile(tb, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if res.Variables["a"].Kind() != profile.Categorical {
		t.Errorf("expected a CAT, got %s", res.Variables["a"].Kind())
	}

	if res.Variables["b"].Kind() != profile.Categorical {
		t.Errorf("expected b CAT, got %s", res.Variables["b"].Kind())
	}

	if res.Correlations == nil || res.Correlations.Cramers == nil {
		t.Fatal("expected a Cramers matrix")
	}

	// No numeric columns, so no Pearson or Spearman matrices.
	if res.Correlations.Pearson != nil || res.Correlations.Spearman != nil {
		t.Error("expected no numeric matrices for an all-categorical table")
	}
}

func TestProfileCorrelationOverride(t *testing.T) {
	tb := table.New()
	tb.AddColumn("x", []interface{}{1.0, 2.0, 3.0, 4.0, 5.0})
	tb.AddColumn("y", []interface{}{2.0, 4.0, 6.0, 8.0, 10.0})

	cfg := DefaultConfig()
	cfg.CorrelationOverrides = []string{"y"}

	res, err := Profile(tb, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if res.Variables["y"].Kind() != profile.Numeric {
		t.Errorf("expected whitelisted y to survive, got %s", res.Variables["y"].Kind())
	}
}

func TestProfileRecoded(t *testing.T) {
	tb := table.New()
	tb.AddColumn("code", []interface{}{"1", "2", "1", "3"})
	tb.AddColumn("label", []interface{}{"a", "b", "a", "c"})

	cfg := DefaultConfig()
	cfg.CheckRecoded = true

	res, err := Profile(tb, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	l := res.Variables["label"]

	if l.Kind() != profile.Recoded {
		t.Fatalf("expected label RECODED, got %s", l.Kind())
	}

	if v, _ := l.Get("correlation_var"); v != "code" {
		t.Errorf("expected correlation_var code, got %v", v)
	}
}

func TestProfileUnsupportedColumn(t *testing.T) {
	tb := table.New()
	tb.AddColumn("x", []interface{}{int64(1), int64(2), int64(2)})
	tb.AddColumn("blob", []interface{}{
		map[string]interface{}{"k": 1},
		nil,
		[]interface{}{1, 2},
	})

	res, err := Profile(tb, noCorrConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if res.Variables["blob"].Kind() != profile.Unsupported {
		t.Errorf("expected blob UNSUPPORTED, got %s", res.Variables["blob"].Kind())
	}

	if _, ok := res.Freq["blob"]; ok {
		t.Error("unexpected frequency table for unsupported column")
	}

	// Differing field sets still merge into one universe.
	seen := make(map[string]struct{})
	for _, n := range res.Names {
		if _, ok := seen[n]; ok {
			t.Fatalf("duplicate name %s in universe", n)
		}
		seen[n] = struct{}{}
	}

	for _, n := range []string{"count", "mean", "type"} {
		if _, ok := seen[n]; !ok {
			t.Errorf("expected %s in name universe", n)
		}
	}
}

func TestProfileIndexColumn(t *testing.T) {
	tb := table.New()
	tb.AddColumn("x", []interface{}{int64(1), int64(2)})
	tb.Index = []interface{}{"r1", "r2"}

	res, err := Profile(tb, noCorrConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, ok := res.Variables["index"]; !ok {
		t.Error("expected the index to be profiled as a column")
	}

	if n, _ := res.Table.Get("nvar"); n != 2 {
		t.Errorf("expected nvar 2, got %v", n)
	}

	// The caller's table is untouched.
	if tb.NumCols() != 1 || tb.Index == nil {
		t.Error("input table was mutated")
	}
}
