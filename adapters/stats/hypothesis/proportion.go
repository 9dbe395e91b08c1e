package hypothesis

import (
	"fmt"
	"math"

	"anovakit/domain/core"
	"anovakit/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// OneProportionZTest tests a sample of proportion observations against a
// hypothesized population proportion p0.
//
// Missing entries are resolved by policy before the mean and n are taken.
// The standard error uses p0, not the sample proportion.
func OneProportionZTest(sample []float64, p0 float64, tail stats.Tail, policy stats.NullPolicy) (stats.ZResult, error) {
	if math.IsNaN(p0) || p0 <= 0 || p0 >= 1 {
		return stats.ZResult{}, core.NewArgumentError("population proportion", fmt.Sprintf("%v not in (0,1)", p0))
	}
	if err := validateTail(tail); err != nil {
		return stats.ZResult{}, err
	}

	resolved, err := ResolveMissing(sample, policy)
	if err != nil {
		return stats.ZResult{}, err
	}

	n := float64(len(resolved))
	pHat := stat.Mean(resolved, nil)
	se := math.Sqrt(p0 * (1 - p0) / n)
	z := (pHat - p0) / se

	return stats.ZResult{Statistic: z, PValue: normalPValue(z, tail)}, nil
}

// normalPValue maps a z statistic to a p-value for the given tail
func normalPValue(z float64, tail stats.Tail) float64 {
	switch tail {
	case stats.TailLeft:
		return dist.NormalCDF(z)
	case stats.TailRight:
		return dist.NormalSurvival(z)
	default:
		return 2 * dist.NormalSurvival(math.Abs(z))
	}
}
