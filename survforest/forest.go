package survforest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/teazrq/springer-surv/dataset"
)

type forest struct {
	store TreeStore
}

/*
New takes a TreeStore and returns the bundled random survival forest
Modeler. Fitted trees are persisted on the given store; a nil store
fits into a fresh in-memory one.
*/
func New(store TreeStore) Modeler {
	if store == nil {
		store = NewMemoryTreeStore()
	}
	return &forest{store}
}

/*
Fit grows a random survival forest on the given observation set:
every tree is grown on a bootstrap resample, splits are chosen by the
log-rank statistic over a sampled feature subset, and terminal nodes
carry Nelson-Aalen hazard estimates. The returned fit reports the
out-of-bag concordance as its accuracy metric, the out-of-bag
ensemble hazard per subject and timepoint, and, when requested,
per-feature permutation importance.

Trees are grown concurrently by config.Workers goroutines, each from
its own deterministically-derived random source, so results do not
depend on scheduling. Out-of-bag aggregation always runs in tree
order.
*/
func (f *forest) Fit(ctx context.Context, obs *dataset.Observations, config Config) (Fit, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %v", err)
	}
	n := obs.Len()
	if n == 0 {
		return nil, fmt.Errorf("cannot fit on an empty observation set")
	}
	names := obs.FeatureNames()
	times := obs.Times()
	events := obs.Events()
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, err := obs.Column(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	timepoints := eventTimepoints(times, events)
	if len(timepoints) == 0 {
		return nil, fmt.Errorf("observation set has no observed events")
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	trees := make([]*Tree, config.Trees)
	oobRows := make([][]int, config.Trees)
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range indexes {
				rng := rand.New(rand.NewSource(seed + int64(b)))
				rows, oob := bootstrap(rng, n)
				g := &grower{cols, times, events, timepoints, config, rng}
				trees[b] = &Tree{Root: g.grow(rows)}
				oobRows[b] = oob
			}
		}()
	}
	for b := 0; b < config.Trees; b++ {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return nil, ctx.Err()
		case indexes <- b:
		}
	}
	close(indexes)
	wg.Wait()

	for b, t := range trees {
		if err := f.store.Store(ctx, b, t); err != nil {
			return nil, fmt.Errorf("storing tree %d: %v", b, err)
		}
	}

	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	oobHazard, oobCounts := ensembleHazard(trees, oobRows, rows, len(timepoints))
	score := concordance(times, events, mortality(oobHazard))

	fit := &forestFit{
		score:      score,
		timepoints: timepoints,
		oobHazard:  oobHazard,
	}
	if config.Importance {
		fit.importance = permutationImportance(
			rand.New(rand.NewSource(seed-1)),
			trees, oobRows, rows, cols, names,
			times, events, oobCounts, score,
		)
	}
	return fit, nil
}

type forestFit struct {
	score      float64
	timepoints []float64
	oobHazard  [][]float64
	importance map[string]float64
}

func (ff *forestFit) OOBScore() float64 {
	return ff.score
}

func (ff *forestFit) OOBHazard() [][]float64 {
	return ff.oobHazard
}

func (ff *forestFit) TimePoints() []float64 {
	return ff.timepoints
}

func (ff *forestFit) Importance() map[string]float64 {
	return ff.importance
}

// bootstrap draws n row indices with replacement and returns them
// along with the indices never drawn.
func bootstrap(rng *rand.Rand, n int) (rows, oob []int) {
	drawn := make([]bool, n)
	rows = make([]int, n)
	for i := range rows {
		r := rng.Intn(n)
		rows[i] = r
		drawn[r] = true
	}
	for i, d := range drawn {
		if !d {
			oob = append(oob, i)
		}
	}
	return rows, oob
}

// eventTimepoints returns the sorted distinct times at which an event
// was observed.
func eventTimepoints(times []float64, events []int) []float64 {
	seen := make(map[float64]bool)
	var timepoints []float64
	for i, t := range times {
		if events[i] == 1 && !seen[t] {
			seen[t] = true
			timepoints = append(timepoints, t)
		}
	}
	sort.Float64s(timepoints)
	return timepoints
}

// ensembleHazard averages, per subject, the terminal hazard of every
// tree on which the subject was out of bag. Subjects in-bag on every
// tree get NaN rows.
func ensembleHazard(trees []*Tree, oobRows [][]int, rows [][]float64, timepointCount int) ([][]float64, []int) {
	n := len(rows)
	sums := make([][]float64, n)
	counts := make([]int, n)
	for i := range sums {
		sums[i] = make([]float64, timepointCount)
	}
	for b, t := range trees {
		for _, i := range oobRows[b] {
			leaf := t.Leaf(rows[i])
			for k, h := range leaf.Hazard {
				sums[i][k] += h
			}
			counts[i]++
		}
	}
	for i := range sums {
		if counts[i] == 0 {
			for k := range sums[i] {
				sums[i][k] = math.NaN()
			}
			continue
		}
		for k := range sums[i] {
			sums[i][k] /= float64(counts[i])
		}
	}
	return sums, counts
}

// mortality reduces a subject's hazard increments to a single risk
// score: the total cumulative hazard over the timepoint sequence.
func mortality(hazard [][]float64) []float64 {
	risk := make([]float64, len(hazard))
	for i, hs := range hazard {
		for _, h := range hs {
			risk[i] += h
		}
	}
	return risk
}
