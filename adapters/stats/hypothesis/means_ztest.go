package hypothesis

import (
	"fmt"
	"math"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// UseVarNotPooled is the only variance mode the means z-test supports
const UseVarNotPooled = "notpooled"

// MeansZTestConfig holds the options of MeansZTest
type MeansZTestConfig struct {
	Value  float64    `json:"value" yaml:"value"`   // hypothesized mean (one sample) or mean difference (two samples)
	Tail   stats.Tail `json:"tail" yaml:"-"`        // alternative hypothesis
	UseVar string     `json:"usevar" yaml:"usevar"` // must be "notpooled"
	DDOF   float64    `json:"ddof" yaml:"ddof"`     // one-sample variance-of-mean adjustment
}

// DefaultMeansZTestConfig returns a two-sided, unpooled test of a zero difference
func DefaultMeansZTestConfig() MeansZTestConfig {
	return MeansZTestConfig{
		Value:  0,
		Tail:   stats.TailBoth,
		UseVar: UseVarNotPooled,
		DDOF:   1,
	}
}

// MeansZTest runs a z-test for one mean (x2 == nil) or the difference of two
// independent means with unpooled variances.
//
// Variances divide by n. In the one-sample case the variance of the mean is
// var/(n1-DDOF) and the second mean is taken as 0. Missing entries are dropped.
func MeansZTest(x1, x2 []float64, cfg MeansZTestConfig) (stats.ZResult, error) {
	if cfg.UseVar != UseVarNotPooled {
		return stats.ZResult{}, fmt.Errorf("%w: only usevar=%q is implemented, got %q", core.ErrNotImplemented, UseVarNotPooled, cfg.UseVar)
	}
	if err := validateTail(cfg.Tail); err != nil {
		return stats.ZResult{}, err
	}

	s1 := dataset.DropMissing(x1)
	if len(s1) == 0 {
		return stats.ZResult{}, fmt.Errorf("%w: x1", core.ErrEmptySample)
	}
	mean1 := stat.Mean(s1, nil)
	var1, err := populationVariance(s1)
	if err != nil {
		return stats.ZResult{}, err
	}
	n1 := float64(len(s1))

	var mean2, varOfMean float64
	if x2 != nil {
		s2 := dataset.DropMissing(x2)
		if len(s2) == 0 {
			return stats.ZResult{}, fmt.Errorf("%w: x2", core.ErrEmptySample)
		}
		var2, err := populationVariance(s2)
		if err != nil {
			return stats.ZResult{}, err
		}
		mean2 = stat.Mean(s2, nil)
		varOfMean = var1/n1 + var2/float64(len(s2))
	} else {
		denom := n1 - cfg.DDOF
		if denom <= 0 {
			return stats.ZResult{}, core.NewPreconditionError(fmt.Sprintf("n1 - ddof must be positive, got %v", denom))
		}
		varOfMean = var1 / denom
	}

	stdDiff := math.Sqrt(varOfMean)
	if stdDiff == 0 || math.IsNaN(stdDiff) {
		return stats.ZResult{}, fmt.Errorf("%w: standard error of the mean difference is %v", core.ErrNonPositiveSpread, stdDiff)
	}

	z := (mean1 - mean2 - cfg.Value) / stdDiff
	return stats.ZResult{Statistic: z, PValue: normalPValue(z, cfg.Tail)}, nil
}
