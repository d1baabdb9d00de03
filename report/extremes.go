package report

// ReportError represents an error related with report selection
type ReportError string

/*
ErrEmptySelection is the error returned when no subject satisfies an
extremal-selection filter: surfacing it is always preferred over
propagating a sentinel index.
*/
const ErrEmptySelection = ReportError("no subject satisfies the selection filter")

func (re ReportError) Error() string {
	return string(re)
}

/*
Extremes takes a ranking-feature column, a binary stratifying
covariate column, the event indicators, a stratum level and an event
restriction, and returns the indices of the subjects achieving the
minimum and the maximum ranking value among subjects in the stratum
with the given event indicator. Exact ties keep the subject appearing
first in row order.

It returns ErrEmptySelection if no subject satisfies the filter.
*/
func Extremes(values, strata []float64, events []int, level float64, wantEvent int) (min, max int, err error) {
	min, max = -1, -1
	for i, v := range values {
		if strata[i] != level || events[i] != wantEvent {
			continue
		}
		if min < 0 || v < values[min] {
			min = i
		}
		if max < 0 || v > values[max] {
			max = i
		}
	}
	if min < 0 {
		return 0, 0, ErrEmptySelection
	}
	return min, max, nil
}
