/*
Package survforest provides the model-fitting collaborator of the
pipeline: a random survival forest engine behind a narrow Modeler
interface. The rest of the repository only depends on the interface,
so the bundled engine can be swapped for any other implementation that
exposes the same fit surface.
*/
package survforest

import (
	"context"
	"fmt"

	"github.com/teazrq/springer-surv/dataset"
)

const (
	// SplitPolicyBest evaluates every candidate cut point of each
	// sampled feature.
	SplitPolicyBest = "best"
	// SplitPolicyRandom draws SplitCount random cut points per
	// sampled feature.
	SplitPolicyRandom = "random"
)

/*
Config holds the knobs of a single model fit.
*/
type Config struct {
	// SampleWidth is the number of candidate features sampled at
	// each split.
	SampleWidth int
	// MinLeaf is the minimum number of subjects a terminal node
	// may hold.
	MinLeaf int
	// SplitPolicy selects how candidate cut points are generated:
	// SplitPolicyBest or SplitPolicyRandom.
	SplitPolicy string
	// SplitCount is the number of random cut points drawn per
	// sampled feature under SplitPolicyRandom. It is ignored under
	// SplitPolicyBest.
	SplitCount int
	// Trees is the number of trees grown for the ensemble.
	Trees int
	// Workers is the number of goroutines growing trees. Values
	// below 1 grow sequentially.
	Workers int
	// Importance requests per-feature permutation importance
	// scores on the fit.
	Importance bool
	// Seed seeds the engine's random source. A zero seed fits with
	// a time-derived one.
	Seed int64
}

/*
Validate returns an error describing the first invalid knob of the
configuration, or nil if all knobs are usable.
*/
func (c Config) Validate() error {
	if c.SampleWidth < 1 {
		return fmt.Errorf("sample width must be at least 1, got %d", c.SampleWidth)
	}
	if c.MinLeaf < 1 {
		return fmt.Errorf("minimum leaf size must be at least 1, got %d", c.MinLeaf)
	}
	if c.SplitPolicy != SplitPolicyBest && c.SplitPolicy != SplitPolicyRandom {
		return fmt.Errorf("unknown split policy %q", c.SplitPolicy)
	}
	if c.SplitPolicy == SplitPolicyRandom && c.SplitCount < 1 {
		return fmt.Errorf("split count must be at least 1 under the random policy, got %d", c.SplitCount)
	}
	if c.Trees < 1 {
		return fmt.Errorf("tree count must be at least 1, got %d", c.Trees)
	}
	return nil
}

/*
Fit is the read-only surface of a fitted model. The reporting stage
consumes it to derive survival curves and importance rankings; nothing
else about the fitted model is observable.
*/
type Fit interface {
	// OOBScore returns the model's self-reported out-of-bag
	// accuracy metric, in [0,1], higher is better.
	OOBScore() float64
	// OOBHazard returns the per-subject, per-timepoint out-of-bag
	// hazard-rate increments, one row per subject aligned with the
	// training observation set and one column per timepoint.
	// Subjects that were in-bag on every tree carry NaN rows.
	OOBHazard() [][]float64
	// TimePoints returns the ordered timepoint sequence the hazard
	// columns are indexed by.
	TimePoints() []float64
	// Importance returns per-feature importance scores keyed by
	// feature name, or nil if the fit was not configured to
	// compute them.
	Importance() map[string]float64
}

/*
Modeler is an interface wrapping the Fit method: the external
model-fitting capability the pipeline delegates to. Implementations
consume a training observation set and a configuration and return an
opaque fitted model.
*/
type Modeler interface {
	Fit(ctx context.Context, obs *dataset.Observations, config Config) (Fit, error)
}
