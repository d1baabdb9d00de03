package feature

import (
	"fmt"
	"math"
)

/*
Feature represents a property observed on every subject of a study.
*/
type Feature interface {
	Name() string
	Valid(float64) (bool, error)
}

/*
ExpressionFeature represents a continuous measurement, such as the
normalized expression level of a gene. Any finite float64 is a valid
value.
*/
type ExpressionFeature struct {
	name string
}

/*
IndicatorFeature represents a binary property encoded as 0 or 1, such
as an event indicator or a two-level stratifying covariate.
*/
type IndicatorFeature struct {
	name string
}

/*
NewExpressionFeature takes a name string and returns an expression
feature with the given name.
*/
func NewExpressionFeature(name string) *ExpressionFeature {
	return &ExpressionFeature{name}
}

/*
NewIndicatorFeature takes a name string and returns an indicator
feature with the given name.
*/
func NewIndicatorFeature(name string) *IndicatorFeature {
	return &IndicatorFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (ef *ExpressionFeature) Name() string {
	return ef.name
}

/*
Valid receives a float64 value and returns a boolean and an error.
It returns true and nil for any finite value, false and an error
describing the reason otherwise.
*/
func (ef *ExpressionFeature) Valid(value float64) (bool, error) {
	if math.IsNaN(value) {
		return false, fmt.Errorf("expression feature %s got NaN value", ef.name)
	}
	if math.IsInf(value, 0) {
		return false, fmt.Errorf("expression feature %s got non-finite value %v", ef.name, value)
	}
	return true, nil
}

func (ef *ExpressionFeature) String() string {
	return ef.name
}

/*
Name returns a string with the name of the feature
*/
func (inf *IndicatorFeature) Name() string {
	return inf.name
}

/*
Valid receives a float64 value and returns a boolean and an error.
It returns true and nil when the value is exactly 0 or 1, false and
an error describing the reason otherwise.
*/
func (inf *IndicatorFeature) Valid(value float64) (bool, error) {
	if value != 0 && value != 1 {
		return false, fmt.Errorf("indicator feature %s expects 0 or 1, got %v", inf.name, value)
	}
	return true, nil
}

func (inf *IndicatorFeature) String() string {
	return inf.name
}
