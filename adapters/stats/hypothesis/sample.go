// Package hypothesis implements the one- and two-population tests used to
// screen data before an ANOVA: proportion and mean z-tests, the chi-square
// variance test and the F-test for equal variances.
package hypothesis

import (
	"fmt"
	"math"

	"anovakit/adapters/stats/distributions"
	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

var dist = distributions.New()

// ResolveMissing applies a null policy to a sample and returns a fresh slice.
// The input is never modified.
func ResolveMissing(sample []float64, policy stats.NullPolicy) ([]float64, error) {
	present := dataset.DropMissing(sample)
	if len(present) == 0 {
		return nil, core.ErrEmptySample
	}
	if policy == stats.NullDrop || len(present) == len(sample) {
		return present, nil
	}

	var fill float64
	var err error
	switch policy {
	case stats.NullMean:
		fill, err = mstats.Mean(present)
	case stats.NullMedian:
		fill, err = mstats.Median(present)
	default:
		return nil, core.NewArgumentError("null policy", policy.String())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmptySample, err)
	}

	resolved := make([]float64, len(sample))
	for i, v := range sample {
		if math.IsNaN(v) {
			resolved[i] = fill
			continue
		}
		resolved[i] = v
	}
	return resolved, nil
}

// populationVariance divides by n, matching the variance used by the
// z-test for means and the F-test on raw samples
func populationVariance(data []float64) (float64, error) {
	v, err := mstats.PopulationVariance(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrEmptySample, err)
	}
	return v, nil
}

// sampleVariance divides by n-1
func sampleVariance(data []float64) (float64, error) {
	if len(data) < 2 {
		return 0, core.NewPreconditionError(fmt.Sprintf("sample variance needs at least 2 observations, got %d", len(data)))
	}
	return stat.Variance(data, nil), nil
}

func validateConfidence(confidence float64) error {
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 1 {
		return core.NewArgumentError("confidence", fmt.Sprintf("%v not in (0,1)", confidence))
	}
	return nil
}

func validateTail(tail stats.Tail) error {
	if !tail.Valid() {
		return core.NewTailError(tail.String())
	}
	return nil
}

// Significance returns alpha = 1 - confidence
func Significance(confidence float64) float64 {
	return 1 - confidence
}
