package survforest

import (
	"math"
	"math/rand"
)

// permutationImportance scores each feature by how much the
// out-of-bag concordance drops when the feature's column is permuted
// across subjects before routing out-of-bag rows through the trees.
// Features the forest never relies on score near zero; noise can make
// a score slightly negative.
func permutationImportance(rng *rand.Rand, trees []*Tree, oobRows [][]int, rows [][]float64, cols [][]float64, names []string, times []float64, events []int, oobCounts []int, baseline float64) map[string]float64 {
	n := len(rows)
	importance := make(map[string]float64, len(names))
	row := make([]float64, len(cols))
	for j, name := range names {
		perm := rng.Perm(n)
		sums := make([]float64, n)
		for b, t := range trees {
			for _, i := range oobRows[b] {
				copy(row, rows[i])
				row[j] = cols[j][perm[i]]
				leaf := t.Leaf(row)
				for _, h := range leaf.Hazard {
					sums[i] += h
				}
			}
		}
		risk := make([]float64, n)
		for i := range risk {
			if oobCounts[i] == 0 {
				risk[i] = math.NaN()
				continue
			}
			risk[i] = sums[i] / float64(oobCounts[i])
		}
		importance[name] = baseline - concordance(times, events, risk)
	}
	return importance
}
