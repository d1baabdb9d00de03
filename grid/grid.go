/*
Package grid enumerates Cartesian grids of model configurations,
evaluates them against a fixed training set and selects the best
point by its recorded out-of-bag score.
*/
package grid

import (
	"context"
	"fmt"

	"github.com/teazrq/springer-surv/dataset"
	"github.com/teazrq/springer-surv/survforest"
)

// GridError represents an error related with grid selection
type GridError string

/*
ErrEmptyGrid is the error returned when the best point of a grid with
no points is requested.
*/
const ErrEmptyGrid = GridError("cannot select the best point of an empty grid")

func (ge GridError) Error() string {
	return string(ge)
}

/*
Point is one configuration of the tuning grid. It is created at
enumeration time with a zero OOBScore; the sweep attaches the score
exactly once and it is never mutated afterwards.
*/
type Point struct {
	// SampleWidth is the number of candidate features sampled at
	// each split.
	SampleWidth int
	// MinLeaf is the minimum number of subjects per terminal node.
	MinLeaf int
	// SplitPolicy is the split-generation policy:
	// survforest.SplitPolicyBest or survforest.SplitPolicyRandom.
	SplitPolicy string
	// SplitCount is the derived number of random cut points: 0
	// under the best policy, the fixed random draw count otherwise.
	SplitCount int
	// OOBScore is the out-of-bag accuracy recorded for the point
	// by the sweep.
	OOBScore float64
}

func (p Point) String() string {
	return fmt.Sprintf("width=%d leaf=%d policy=%s splits=%d", p.SampleWidth, p.MinLeaf, p.SplitPolicy, p.SplitCount)
}

/*
Enumerate takes slices of sampling widths, minimum leaf sizes and
split policies plus the random-policy split count and returns the
Cartesian product of the three slices in row-major order: widths
outermost, then leaf sizes, then policies. The derived SplitCount of
each point is 0 under the best policy and randomSplitCount otherwise.
*/
func Enumerate(widths, leaves []int, policies []string, randomSplitCount int) []Point {
	points := make([]Point, 0, len(widths)*len(leaves)*len(policies))
	for _, w := range widths {
		for _, l := range leaves {
			for _, p := range policies {
				splits := 0
				if p == survforest.SplitPolicyRandom {
					splits = randomSplitCount
				}
				points = append(points, Point{
					SampleWidth: w,
					MinLeaf:     l,
					SplitPolicy: p,
					SplitCount:  splits,
				})
			}
		}
	}
	return points
}

/*
Sweep takes a context.Context, a Modeler, a training observation set,
the grid points and the tree count, worker count and seed shared by
all fits, and evaluates every point in grid order: it fits a model at
the point's configuration and records the fit's self-reported
out-of-bag accuracy on the point.

Evaluations are independent of each other; the sweep runs them
sequentially because the Modeler may itself use the worker count for
multi-core fitting. The same seed is passed to every fit so that
points compete on configuration alone.

The first failing fit aborts the sweep and its error is returned.
*/
func Sweep(ctx context.Context, m survforest.Modeler, obs *dataset.Observations, points []Point, trees, workers int, seed int64) error {
	for i := range points {
		if err := ctx.Err(); err != nil {
			return err
		}
		fit, err := m.Fit(ctx, obs, survforest.Config{
			SampleWidth: points[i].SampleWidth,
			MinLeaf:     points[i].MinLeaf,
			SplitPolicy: points[i].SplitPolicy,
			SplitCount:  points[i].SplitCount,
			Trees:       trees,
			Workers:     workers,
			Seed:        seed,
		})
		if err != nil {
			return fmt.Errorf("evaluating grid point %d (%v): %v", i, points[i], err)
		}
		points[i].OOBScore = fit.OOBScore()
	}
	return nil
}

/*
Best takes a slice of evaluated points and returns the index of the
point with the maximum recorded OOBScore. On an exact tie the point
appearing first in grid enumeration order wins: later points only
replace the incumbent on a strictly greater score.

It returns ErrEmptyGrid if the slice is empty.
*/
func Best(points []Point) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmptyGrid
	}
	best := 0
	for i, p := range points[1:] {
		if p.OOBScore > points[best].OOBScore {
			best = i + 1
		}
	}
	return best, nil
}
