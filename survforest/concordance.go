package survforest

import "math"

// concordance computes Harrell's concordance index of the given risk
// scores against the observed outcomes: over every comparable pair
// (an observed event before another subject's time), the fraction in
// which the earlier-event subject carries the higher risk, counting
// exact risk ties as one half. Subjects with NaN risk are excluded.
func concordance(times []float64, events []int, risk []float64) float64 {
	var comparable, concordant float64
	for i := range risk {
		if events[i] != 1 || math.IsNaN(risk[i]) {
			continue
		}
		for j := range risk {
			if j == i || math.IsNaN(risk[j]) || times[i] >= times[j] {
				continue
			}
			comparable++
			if risk[i] > risk[j] {
				concordant++
			} else if risk[i] == risk[j] {
				concordant += 0.5
			}
		}
	}
	if comparable == 0 {
		return 0
	}
	return concordant / comparable
}
