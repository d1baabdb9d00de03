package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/teazrq/springer-surv/dataset/sqldataset"
)

const observationsTable = "observations"

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a maximum number of
open connections (0 for no limit) and returns an Adapter that reads
the observations table on the file's database, or an error if it fails
to open as an SQLite3 database.
*/
func New(path string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnNames(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("SELECT name FROM pragma_table_info('%s') ORDER BY cid", observationsTable))
	if err != nil {
		return nil, fmt.Errorf("querying table info for %s: %v", observationsTable, err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column name: %v", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (a *adapter) Rows(ctx context.Context, lambda func(values []float64) error) error {
	columns, err := a.ColumnNames(ctx)
	if err != nil {
		return err
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %q", strings.Join(quoted, ", "), observationsTable))
	if err != nil {
		return fmt.Errorf("querying %s: %v", observationsTable, err)
	}
	defer rows.Close()
	values := make([]float64, len(columns))
	scanTargets := make([]interface{}, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("scanning row: %v", err)
		}
		row := make([]float64, len(values))
		copy(row, values)
		if err := lambda(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
