/*
Package report derives the read-only views of a fitted model and of
the raw observation set that the pipeline renders as its output
artifacts: survival-probability curves, variable-importance rankings
and extremal-subject comparisons.
*/
package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
SurvivalFromHazard takes a per-subject, per-timepoint grid of
hazard-rate increments and returns the survival-probability grid
derived from it: survival(subject, t) is the exponential of the
negated cumulative hazard up to t, with the cumulative sum running
over the ordered timepoint sequence of the fit.

The transform is pure and per-subject independent. Non-finite hazard
inputs propagate as non-finite outputs; nothing is clamped.
*/
func SurvivalFromHazard(hazard [][]float64) [][]float64 {
	survival := make([][]float64, len(hazard))
	for i, hs := range hazard {
		cumulative := make([]float64, len(hs))
		floats.CumSum(cumulative, hs)
		for k, ch := range cumulative {
			cumulative[k] = math.Exp(-ch)
		}
		survival[i] = cumulative
	}
	return survival
}

/*
CurvePoint is one point of a survival curve in long form: a subject,
a timepoint and the survival probability of the subject at it.
*/
type CurvePoint struct {
	Subject     int
	Time        float64
	Probability float64
}

/*
Long takes the subject indices to include, the ordered timepoint
sequence and a survival-probability grid aligned with both, and
reshapes the wide grid into a long (subject, time, probability)
relation, subject by subject in the given order.
*/
func Long(subjects []int, timepoints []float64, survival [][]float64) []CurvePoint {
	points := make([]CurvePoint, 0, len(subjects)*len(timepoints))
	for _, s := range subjects {
		for k, t := range timepoints {
			points = append(points, CurvePoint{Subject: s, Time: t, Probability: survival[s][k]})
		}
	}
	return points
}
