package survforest

import (
	"math/rand"
	"sort"
)

/*
Node is a node of a survival tree. Terminal nodes carry the
Nelson-Aalen hazard increments estimated from their in-bag subjects
over the forest's timepoint sequence; internal nodes carry a split on
a single feature column.
*/
type Node struct {
	// The column index of the feature this node splits on, or -1
	// for a terminal node.
	Feature int
	// Subjects with a feature value <= Cut descend left, the rest
	// descend right.
	Cut float64
	// The subtrees under this node, nil on terminal nodes.
	Left  *Node
	Right *Node
	// The hazard increments at the forest's timepoints, set on
	// terminal nodes only.
	Hazard []float64
}

/*
Tree is a single survival tree of a fitted forest.
*/
type Tree struct {
	Root *Node
}

// grower carries the fixed inputs of a single tree's growth: the
// column-major training matrix, the outcome vectors, the forest
// timepoints and the tree's own random source.
type grower struct {
	cols       [][]float64
	times      []float64
	events     []int
	timepoints []float64
	config     Config
	rng        *rand.Rand
}

func (g *grower) grow(rows []int) *Node {
	if feature, cut, ok := g.bestSplit(rows); ok {
		var left, right []int
		for _, r := range rows {
			if g.cols[feature][r] <= cut {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
		return &Node{
			Feature: feature,
			Cut:     cut,
			Left:    g.grow(left),
			Right:   g.grow(right),
		}
	}
	return &Node{Feature: -1, Hazard: g.nelsonAalen(rows)}
}

// bestSplit searches a sampled subset of feature columns for the cut
// with the largest log-rank statistic. Candidate features and cuts are
// scanned in a fixed order and only strict improvements replace the
// incumbent, so exact ties keep the first candidate encountered.
func (g *grower) bestSplit(rows []int) (feature int, cut float64, ok bool) {
	if len(rows) < 2*g.config.MinLeaf || countEvents(g.events, rows) == 0 {
		return 0, 0, false
	}
	best := 0.0
	for _, f := range g.sampleFeatures() {
		for _, c := range g.candidateCuts(f, rows) {
			stat, valid := g.logRank(f, c, rows)
			if valid && stat > best {
				best = stat
				feature = f
				cut = c
				ok = true
			}
		}
	}
	return feature, cut, ok
}

// sampleFeatures draws SampleWidth distinct column indices.
func (g *grower) sampleFeatures() []int {
	p := len(g.cols)
	width := g.config.SampleWidth
	if width > p {
		width = p
	}
	return g.rng.Perm(p)[:width]
}

// candidateCuts generates the cut points to evaluate for a feature
// over the given rows: under the best policy the midpoints between
// consecutive distinct sorted values, under the random policy
// SplitCount uniform draws between the smallest and largest value.
func (g *grower) candidateCuts(feature int, rows []int) []float64 {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		values = append(values, g.cols[feature][r])
	}
	sort.Float64s(values)
	lo, hi := values[0], values[len(values)-1]
	if lo == hi {
		return nil
	}
	if g.config.SplitPolicy == SplitPolicyRandom {
		cuts := make([]float64, g.config.SplitCount)
		for i := range cuts {
			cuts[i] = lo + g.rng.Float64()*(hi-lo)
		}
		return cuts
	}
	var cuts []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			cuts = append(cuts, (values[i]+values[i-1])/2)
		}
	}
	return cuts
}

// logRank computes the two-sample log-rank statistic for splitting
// the given rows on feature <= cut. It returns false when either side
// would fall below the minimum leaf size or the statistic variance is
// zero.
func (g *grower) logRank(feature int, cut float64, rows []int) (float64, bool) {
	left := 0
	for _, r := range rows {
		if g.cols[feature][r] <= cut {
			left++
		}
	}
	if left < g.config.MinLeaf || len(rows)-left < g.config.MinLeaf {
		return 0, false
	}

	order := make([]int, len(rows))
	copy(order, rows)
	sort.SliceStable(order, func(a, b int) bool {
		return g.times[order[a]] > g.times[order[b]]
	})

	// Walk event times from largest to smallest accumulating the
	// risk-set sizes, summing the observed-minus-expected left-side
	// events and the hypergeometric variance at each distinct time.
	var atRisk, atRiskLeft float64
	var num, variance float64
	for i := 0; i < len(order); {
		j := i
		var d, dLeft float64
		for j < len(order) && g.times[order[j]] == g.times[order[i]] {
			r := order[j]
			atRisk++
			inLeft := g.cols[feature][r] <= cut
			if inLeft {
				atRiskLeft++
			}
			if g.events[r] == 1 {
				d++
				if inLeft {
					dLeft++
				}
			}
			j++
		}
		if d > 0 {
			num += dLeft - d*atRiskLeft/atRisk
			if atRisk > 1 {
				variance += d * (atRiskLeft / atRisk) * (1 - atRiskLeft/atRisk) * (atRisk - d) / (atRisk - 1)
			}
		}
		i = j
	}
	if variance == 0 {
		return 0, false
	}
	return num * num / variance, true
}

// nelsonAalen estimates the hazard increment at each forest timepoint
// from the given rows: events at the timepoint over subjects still at
// risk there.
func (g *grower) nelsonAalen(rows []int) []float64 {
	hazard := make([]float64, len(g.timepoints))
	for k, t := range g.timepoints {
		var d, n float64
		for _, r := range rows {
			if g.times[r] >= t {
				n++
				if g.times[r] == t && g.events[r] == 1 {
					d++
				}
			}
		}
		if n > 0 {
			hazard[k] = d / n
		}
	}
	return hazard
}

/*
Leaf routes a subject's feature-value vector down the tree and returns
the terminal node it lands on.
*/
func (t *Tree) Leaf(row []float64) *Node {
	n := t.Root
	for n.Feature >= 0 {
		if row[n.Feature] <= n.Cut {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

func countEvents(events []int, rows []int) int {
	count := 0
	for _, r := range rows {
		if events[r] == 1 {
			count++
		}
	}
	return count
}
