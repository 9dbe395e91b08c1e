package hypothesis

import (
	"fmt"
	"math"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats"
)

// FTest compares two variances with F = var1/var2.
//
// One-sided tails use F(dof1, dof2). The two-sided branch uses F(dof2, dof1)
// for its p-value and critical values.
func FTest(pair stats.VariancePair, confidence float64, tail stats.Tail) (stats.FResult, error) {
	if err := validateConfidence(confidence); err != nil {
		return stats.FResult{}, err
	}
	if err := validateTail(tail); err != nil {
		return stats.FResult{}, err
	}

	var1, var2, n1, n2, err := resolveVariancePair(pair)
	if err != nil {
		return stats.FResult{}, err
	}
	dof1, dof2 := n1-1, n2-1
	if dof1 <= 0 || dof2 <= 0 {
		return stats.FResult{}, fmt.Errorf("%w: got (%d, %d)", core.ErrDegreesOfFreedom, dof1, dof2)
	}

	f := var1 / var2
	result := stats.FResult{Tail: tail, Statistic: f, DOF1: dof1, DOF2: dof2}

	switch tail {
	case stats.TailRight:
		result.PValue = 1 - dist.FCDF(f, dof1, dof2)
		result.Critical = dist.FQuantile(confidence, dof1, dof2)
	case stats.TailLeft:
		result.PValue = dist.FCDF(f, dof1, dof2)
		result.Critical = dist.FQuantile(1-confidence, dof1, dof2)
	case stats.TailBoth:
		alpha := 1 - confidence
		cdf := dist.FCDF(f, dof2, dof1)
		result.PValue = 2 * math.Min(cdf, 1-cdf)
		result.LeftCritical = dist.FQuantile(alpha/2, dof2, dof1)
		result.RightCritical = dist.FQuantile(1-alpha/2, dof2, dof1)
	}

	return result, nil
}

func resolveVariancePair(pair stats.VariancePair) (var1, var2 float64, n1, n2 int, err error) {
	switch p := pair.(type) {
	case stats.FromVariances:
		var1, var2, n1, n2 = p.Var1, p.Var2, p.N1, p.N2

	case stats.FromSamples:
		s1, s2 := dataset.DropMissing(p.X1), dataset.DropMissing(p.X2)
		if len(s1) == 0 || len(s2) == 0 {
			return 0, 0, 0, 0, core.ErrEmptySample
		}
		if var1, err = populationVariance(s1); err != nil {
			return 0, 0, 0, 0, err
		}
		if var2, err = populationVariance(s2); err != nil {
			return 0, 0, 0, 0, err
		}
		n1, n2 = len(s1), len(s2)

	case nil:
		return 0, 0, 0, 0, fmt.Errorf("%w: no variances given", core.ErrAmbiguousInput)

	default:
		return 0, 0, 0, 0, fmt.Errorf("%w: unsupported variance pair %T", core.ErrAmbiguousInput, pair)
	}

	if !(var1 > 0) || !(var2 > 0) || math.IsInf(var1, 0) || math.IsInf(var2, 0) {
		return 0, 0, 0, 0, fmt.Errorf("%w: got (%v, %v)", core.ErrNonPositiveSpread, var1, var2)
	}
	return var1, var2, n1, n2, nil
}
