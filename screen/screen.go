/*
Package screen ranks the features of an observation set by their
univariate association with the survival outcome and selects a
reduced feature subset for model fitting.

Every feature is scored independently of all the others with a
closed-form Cox score test, so the scoring scan fans out across
goroutines; the resulting ranking is always reported in the feature
order of the observation set, so that ties in score resolve by column
order no matter how the scan was scheduled.
*/
package screen

import (
	"context"
	"sort"
	"sync"

	"github.com/teazrq/springer-surv/dataset"
)

// ScreenError represents an error detected while scoring features
type ScreenError string

/*
ErrDegenerateFeature is the error returned when a feature column has
zero variance: the univariate score test is undefined for it and the
whole screening run must abort.
*/
const ErrDegenerateFeature = ScreenError("feature column has zero variance")

/*
ErrEmptyFeature is the error returned when a feature column has no
values to score.
*/
const ErrEmptyFeature = ScreenError("feature column has no values")

func (se ScreenError) Error() string {
	return string(se)
}

/*
FeatureScore holds the association score computed for a single
feature. Lower scores indicate stronger association.
*/
type FeatureScore struct {
	Name  string
	Score float64
}

/*
Rank takes a context.Context and an observation set and returns one
FeatureScore per feature, in the column order of the observation set,
or an error. Scoring is embarrassingly parallel: each column is scored
on its own goroutine and results land at their column's index.

It returns ErrDegenerateFeature if any column has zero variance.
*/
func Rank(ctx context.Context, obs *dataset.Observations) ([]FeatureScore, error) {
	names := obs.FeatureNames()
	times := obs.Times()
	events := obs.Events()
	scores := make([]FeatureScore, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			xs, err := obs.Column(name)
			if err != nil {
				errs[i] = err
				return
			}
			score, err := Score(xs, times, events)
			if err != nil {
				errs[i] = err
				return
			}
			scores[i] = FeatureScore{Name: name, Score: score}
		}(i, name)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

/*
TopK takes a slice of feature scores and a k and returns the names of
the k features with the smallest scores, or all of them if k exceeds
the feature count. The selection sort is stable: features with equal
scores keep their relative input order.
*/
func TopK(scores []FeatureScore, k int) []string {
	ranked := make([]FeatureScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	names := make([]string, 0, k)
	for _, fs := range ranked[:k] {
		names = append(names, fs.Name)
	}
	return names
}

/*
Union takes the top-ranked feature names and a reference gene list and
returns their deduplicated union: the top-ranked names first in rank
order, then the reference identifiers not already present, in
reference order.
*/
func Union(topRanked, reference []string) []string {
	selected := make([]string, 0, len(topRanked)+len(reference))
	seen := make(map[string]bool)
	for _, name := range topRanked {
		if !seen[name] {
			seen[name] = true
			selected = append(selected, name)
		}
	}
	for _, name := range reference {
		if !seen[name] {
			seen[name] = true
			selected = append(selected, name)
		}
	}
	return selected
}
