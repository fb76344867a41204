// Package pg loads a Postgres table or query result into an in-memory
// table for profiling.
package pg

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/chop-dbhi/table-profiler/table"
)

// Load opens the database and reads an entire table. The schema
// defaults to public.
func Load(url, schema, name string) (*table.Table, error) {
	if name == "" {
		return nil, fmt.Errorf("pg: table name required")
	}

	if schema == "" {
		schema = "public"
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("pg: open: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		"select * from %s.%s",
		pq.QuoteIdentifier(schema),
		pq.QuoteIdentifier(name),
	)

	return LoadQuery(db, query)
}

// LoadQuery reads a query result into a table. Driver values are
// mapped to the profiler's machine types; bytes become strings.
func LoadQuery(db *sql.DB, query string) (*table.Table, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("pg: query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("pg: columns: %w", err)
	}

	cols := make([][]interface{}, len(names))

	dest := make([]interface{}, len(names))
	for i := range dest {
		dest[i] = new(interface{})
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("pg: scan: %w", err)
		}

		for i := range dest {
			v := *(dest[i].(*interface{}))
			cols[i] = append(cols[i], cellValue(v))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: rows: %w", err)
	}

	t := table.New()

	for i, name := range names {
		t.AddColumn(name, cols[i])
	}

	return t, nil
}

func cellValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		if len(x) == 0 {
			return nil
		}
		return string(x)
	case bool, int64, float64, time.Time:
		return x
	case int32:
		return int64(x)
	case string:
		if x == "" {
			return nil
		}
		return x
	}

	return v
}
