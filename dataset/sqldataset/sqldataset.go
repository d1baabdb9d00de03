/*
Package sqldataset provides a read-only SQL database backend for
observation sets. The SQL dialect specifics are confined to an Adapter
implementation, so the same reading logic serves SQLite3 files and
PostgreSQL databases.
*/
package sqldataset

import (
	"context"
	"fmt"

	"github.com/teazrq/springer-surv/dataset"
)

/*
Adapter is an interface providing the methods needed to read an
observation snapshot from a database backend.
*/
type Adapter interface {
	// ColumnNames returns the column names of the observations
	// table in their stored order.
	ColumnNames(ctx context.Context) ([]string, error)
	// Rows iterates over the rows of the observations table in
	// their stored order, invoking the given function with each
	// row's values aligned with ColumnNames. Iteration stops at
	// the first error, which is returned.
	Rows(ctx context.Context, lambda func(values []float64) error) error
	// Close closes the adapter, freeing any underlying database
	// resources.
	Close() error
}

/*
Read takes a context.Context, an Adapter and the names of the time and
event columns and returns the Observations read through the adapter or
an error. Every column other than the time and event ones is taken as
an expression feature.
*/
func Read(ctx context.Context, a Adapter, timeName, eventName string) (*dataset.Observations, error) {
	columns, err := a.ColumnNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading observation columns: %v", err)
	}
	timeCol, eventCol := -1, -1
	var names []string
	var featureCols []int
	for i, name := range columns {
		switch name {
		case timeName:
			timeCol = i
		case eventName:
			eventCol = i
		default:
			names = append(names, name)
			featureCols = append(featureCols, i)
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("observations table has no time column %s", timeName)
	}
	if eventCol < 0 {
		return nil, fmt.Errorf("observations table has no event column %s", eventName)
	}
	var matrix [][]float64
	var times []float64
	var events []int
	err = a.Rows(ctx, func(values []float64) error {
		if len(values) != len(columns) {
			return fmt.Errorf("row %d has %d values, expected %d", len(matrix), len(values), len(columns))
		}
		row := make([]float64, len(featureCols))
		for k, i := range featureCols {
			row[k] = values[i]
		}
		matrix = append(matrix, row)
		times = append(times, values[timeCol])
		events = append(events, int(values[eventCol]))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading observation rows: %v", err)
	}
	return dataset.New(names, matrix, times, events)
}
