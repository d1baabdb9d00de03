/*
Package yaml provides methods to parse tuning-grid specifications
from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/teazrq/springer-surv/grid"
	"github.com/teazrq/springer-surv/survforest"
	yaml "gopkg.in/yaml.v2"
)

/*
Sweep holds a parsed tuning-grid specification: the enumerated grid
points plus the fit parameters shared by every evaluation.
*/
type Sweep struct {
	Points  []grid.Point
	Trees   int
	Workers int
	Seed    int64
}

/*
ReadSweep takes a slice of bytes with a tuning-grid specification in
YAML and returns the Sweep parsed from it or an error.

The YAML is expected to be an object with sampleWidths, minLeaves and
splitPolicies list properties spanning the grid, a randomSplits
property with the cut-point draw count of the random policy, and
trees, workers and seed properties shared by all fits.
*/
func ReadSweep(md []byte) (*Sweep, error) {
	spec := struct {
		SampleWidths  []int    `yaml:"sampleWidths"`
		MinLeaves     []int    `yaml:"minLeaves"`
		SplitPolicies []string `yaml:"splitPolicies"`
		RandomSplits  int      `yaml:"randomSplits"`
		Trees         int      `yaml:"trees"`
		Workers       int      `yaml:"workers"`
		Seed          int64    `yaml:"seed"`
	}{}
	if err := yaml.Unmarshal(md, &spec); err != nil {
		return nil, fmt.Errorf("parsing yml grid: %v", err)
	}
	if len(spec.SampleWidths) == 0 {
		return nil, fmt.Errorf("grid specification has no sampleWidths")
	}
	if len(spec.MinLeaves) == 0 {
		return nil, fmt.Errorf("grid specification has no minLeaves")
	}
	if len(spec.SplitPolicies) == 0 {
		return nil, fmt.Errorf("grid specification has no splitPolicies")
	}
	for _, p := range spec.SplitPolicies {
		if p != survforest.SplitPolicyBest && p != survforest.SplitPolicyRandom {
			return nil, fmt.Errorf("grid specification has unknown split policy %q", p)
		}
		if p == survforest.SplitPolicyRandom && spec.RandomSplits < 1 {
			return nil, fmt.Errorf("grid specification uses the random policy but randomSplits is %d", spec.RandomSplits)
		}
	}
	if spec.Trees < 1 {
		return nil, fmt.Errorf("grid specification needs at least 1 tree, got %d", spec.Trees)
	}
	return &Sweep{
		Points:  grid.Enumerate(spec.SampleWidths, spec.MinLeaves, spec.SplitPolicies, spec.RandomSplits),
		Trees:   spec.Trees,
		Workers: spec.Workers,
		Seed:    spec.Seed,
	}, nil
}

/*
ReadSweepFromFilePath takes a filepath string, reads the file it
points to and uses ReadSweep to return the Sweep parsed from it or an
error.
*/
func ReadSweepFromFilePath(filepath string) (*Sweep, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading grid specification: %v", err)
	}
	sweep, err := ReadSweep(md)
	if err != nil {
		err = fmt.Errorf("parsing grid specification %s: %v", filepath, err)
	}
	return sweep, err
}
