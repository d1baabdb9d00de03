package screen

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

/*
Score takes a feature column, the observed times and the event
indicators and returns the univariate Cox score-test probability for
the feature: the upper tail of a chi-squared distribution with one
degree of freedom at U(0)²/I(0), where U and I are the score and
information of the Cox partial likelihood at coefficient zero. Lower
values indicate stronger association with the outcome.

The statistic has a closed form, so no iterative fitting is needed:
at each event time the score accumulates the difference between the
subject's value and the mean over the risk set, and the information
accumulates the risk-set variance. Tied event times share the risk
set of their common time (Breslow convention).

Score returns ErrEmptyFeature if the column has no values and
ErrDegenerateFeature if it has zero variance.
*/
func Score(xs, times []float64, events []int) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyFeature
	}
	degenerate := true
	for _, x := range xs[1:] {
		if x != xs[0] {
			degenerate = false
			break
		}
	}
	if degenerate {
		return 0, ErrDegenerateFeature
	}

	order := make([]int, len(times))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return times[order[a]] > times[order[b]]
	})

	// Walk times from largest to smallest so the risk set grows by
	// accumulation: every subject with a time >= the current one has
	// already been added when its events are processed.
	var n, s1, s2 float64
	var u, info float64
	for g := 0; g < len(order); {
		h := g
		for h < len(order) && times[order[h]] == times[order[g]] {
			x := xs[order[h]]
			n++
			s1 += x
			s2 += x * x
			h++
		}
		mean := s1 / n
		variance := s2/n - mean*mean
		for ; g < h; g++ {
			if events[order[g]] == 1 {
				u += xs[order[g]] - mean
				info += variance
			}
		}
	}
	if info == 0 {
		return 1, nil
	}
	chi2 := distuv.ChiSquared{K: 1}
	return chi2.Survival(u * u / info), nil
}
