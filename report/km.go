package report

import "sort"

/*
KaplanMeier takes observed times and event indicators and returns the
product-limit estimate of the survival curve: one point per distinct
event time, in time order, each carrying the survival probability
just after it. The curve starts implicitly at probability 1.
*/
func KaplanMeier(times []float64, events []int) []CurvePoint {
	order := make([]int, len(times))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return times[order[a]] < times[order[b]]
	})
	var curve []CurvePoint
	survival := 1.0
	atRisk := len(order)
	for i := 0; i < len(order); {
		t := times[order[i]]
		d, removed := 0, 0
		for i < len(order) && times[order[i]] == t {
			if events[order[i]] == 1 {
				d++
			}
			removed++
			i++
		}
		if d > 0 {
			survival *= 1 - float64(d)/float64(atRisk)
			curve = append(curve, CurvePoint{Time: t, Probability: survival})
		}
		atRisk -= removed
	}
	return curve
}

/*
StratifiedKaplanMeier takes observed times, event indicators and a
binary stratifying covariate column and returns the Kaplan-Meier
curves of the subjects at level 0 and at level 1 of the covariate.
*/
func StratifiedKaplanMeier(times []float64, events []int, strata []float64) (level0, level1 []CurvePoint) {
	var t0, t1 []float64
	var e0, e1 []int
	for i, s := range strata {
		if s == 0 {
			t0 = append(t0, times[i])
			e0 = append(e0, events[i])
		} else {
			t1 = append(t1, times[i])
			e1 = append(e1, events[i])
		}
	}
	return KaplanMeier(t0, e0), KaplanMeier(t1, e1)
}
