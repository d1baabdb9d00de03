package dataset

import (
	"fmt"
	"math"
)

// ObservationsError represents an error related with the assembly of
// an observation set
type ObservationsError string

/*
ErrMisalignedObservations is the error returned when the feature
matrix, the time vector and the event vector of an observation set do
not share the same subject count.
*/
const ErrMisalignedObservations = ObservationsError("feature matrix, times and events do not share the same subject count")

func (oe ObservationsError) Error() string {
	return string(oe)
}

/*
Observations represents a collection of subjects, each with a vector
of numeric feature values, an observed time and a binary event
indicator. The three parts share the same subject ordering and count.

Observations values are immutable once built: pipeline stages receive
one, derive new ones and hand them forward, never altering the data
they were given.
*/
type Observations struct {
	names  []string
	matrix [][]float64
	times  []float64
	events []int
}

/*
New takes a slice of feature names, a row-major value matrix with one
row per subject and one column per feature, a time vector and an event
vector, and returns the observation set built with them.

It returns ErrMisalignedObservations if the row count of the matrix
and the lengths of the two vectors differ, and a validation error if
any row width does not match the feature names, any time is negative
or not finite, or any event indicator is not 0 or 1.
*/
func New(names []string, matrix [][]float64, times []float64, events []int) (*Observations, error) {
	if len(matrix) != len(times) || len(times) != len(events) {
		return nil, ErrMisalignedObservations
	}
	for i, row := range matrix {
		if len(row) != len(names) {
			return nil, fmt.Errorf("subject %d has %d feature values, expected %d", i, len(row), len(names))
		}
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return nil, fmt.Errorf("subject %d has invalid time %v", i, t)
		}
	}
	for i, e := range events {
		if e != 0 && e != 1 {
			return nil, fmt.Errorf("subject %d has invalid event indicator %d", i, e)
		}
	}
	return &Observations{names, matrix, times, events}, nil
}

/*
Len returns the number of subjects in the observation set.
*/
func (o *Observations) Len() int {
	return len(o.matrix)
}

/*
FeatureNames returns a copy of the slice with the names of the
features in the observation set, in column order.
*/
func (o *Observations) FeatureNames() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

/*
Times returns a copy of the observed time vector.
*/
func (o *Observations) Times() []float64 {
	times := make([]float64, len(o.times))
	copy(times, o.times)
	return times
}

/*
Events returns a copy of the event indicator vector.
*/
func (o *Observations) Events() []int {
	events := make([]int, len(o.events))
	copy(events, o.events)
	return events
}

/*
Column takes a feature name and returns a copy of the column of values
for that feature, or an error if the observation set has no feature
with that name.
*/
func (o *Observations) Column(name string) ([]float64, error) {
	j := -1
	for i, n := range o.names {
		if n == name {
			j = i
			break
		}
	}
	if j < 0 {
		return nil, fmt.Errorf("observation set has no feature %s", name)
	}
	column := make([]float64, len(o.matrix))
	for i, row := range o.matrix {
		column[i] = row[j]
	}
	return column, nil
}

/*
Row takes a subject index and returns a copy of that subject's
feature-value vector, or an error if the index is out of range.
*/
func (o *Observations) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(o.matrix) {
		return nil, fmt.Errorf("subject index %d out of range [0,%d)", i, len(o.matrix))
	}
	row := make([]float64, len(o.matrix[i]))
	copy(row, o.matrix[i])
	return row, nil
}

/*
Select takes a slice of feature names and returns a new observation
set projected onto those features, preserving subject order, or an
error if any name is unknown. The outcome vectors are shared-by-copy:
the projection carries the same times and events.
*/
func (o *Observations) Select(names []string) (*Observations, error) {
	columns := make([]int, len(names))
	for i, name := range names {
		j := -1
		for k, n := range o.names {
			if n == name {
				j = k
				break
			}
		}
		if j < 0 {
			return nil, fmt.Errorf("observation set has no feature %s", name)
		}
		columns[i] = j
	}
	matrix := make([][]float64, len(o.matrix))
	for i, row := range o.matrix {
		selected := make([]float64, len(columns))
		for k, j := range columns {
			selected[k] = row[j]
		}
		matrix[i] = selected
	}
	return &Observations{append([]string(nil), names...), matrix, o.times, o.events}, nil
}
