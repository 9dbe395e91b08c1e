package hypothesis

import (
	"fmt"
	"math"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats"
)

// ChiSquareVarianceTest compares a sample variance against a hypothesized
// population standard deviation sigma0 using chi2 = dof * s^2 / sigma0^2.
//
// The p-value is the upper tail 1 - CDF(chi2) for every tail; the tail only
// selects which critical values are reported.
func ChiSquareVarianceTest(sigma0, confidence float64, tail stats.Tail, source stats.VarianceSource) (stats.ChiSquareResult, error) {
	if err := validateConfidence(confidence); err != nil {
		return stats.ChiSquareResult{}, err
	}
	if err := validateTail(tail); err != nil {
		return stats.ChiSquareResult{}, err
	}
	if math.IsNaN(sigma0) || sigma0 <= 0 {
		return stats.ChiSquareResult{}, fmt.Errorf("%w: population standard deviation %v", core.ErrNonPositiveSpread, sigma0)
	}

	variance, dof, err := resolveVarianceSource(source)
	if err != nil {
		return stats.ChiSquareResult{}, err
	}
	if dof <= 0 {
		return stats.ChiSquareResult{}, fmt.Errorf("%w: got %d", core.ErrDegreesOfFreedom, dof)
	}

	statistic := float64(dof) * variance / (sigma0 * sigma0)
	result := stats.ChiSquareResult{
		Tail:      tail,
		Statistic: statistic,
		PValue:    1 - dist.ChiSquareCDF(statistic, dof),
		DOF:       dof,
	}

	switch tail {
	case stats.TailLeft:
		result.Critical = dist.ChiSquareQuantile(1-confidence, dof)
	case stats.TailRight:
		result.Critical = dist.ChiSquareQuantile(confidence, dof)
	case stats.TailBoth:
		half := (1 - confidence) / 2
		result.LeftCritical = dist.ChiSquareQuantile(half, dof)
		result.RightCritical = dist.ChiSquareQuantile(1-half, dof)
	}

	return result, nil
}

// resolveVarianceSource returns the sample variance and degrees of freedom for one input mode
func resolveVarianceSource(source stats.VarianceSource) (float64, int, error) {
	switch src := source.(type) {
	case stats.ByStats:
		if math.IsNaN(src.StdDev) || math.IsInf(src.StdDev, 0) || src.StdDev < 0 {
			return 0, 0, fmt.Errorf("%w: sample standard deviation %v", core.ErrNonPositiveSpread, src.StdDev)
		}
		return src.StdDev * src.StdDev, src.DDOF, nil

	case stats.ByData:
		data := dataset.DropMissing(src.Data)
		if len(data) == 0 {
			return 0, 0, core.ErrEmptySample
		}
		v, err := sampleVariance(data)
		if err != nil {
			return 0, 0, err
		}
		return v, len(data) - 1, nil

	case stats.ByDataWithDDOF:
		data := dataset.DropMissing(src.Data)
		if len(data) == 0 {
			return 0, 0, core.ErrEmptySample
		}
		v, err := sampleVariance(data)
		if err != nil {
			return 0, 0, err
		}
		return v, src.DDOF, nil

	case nil:
		return 0, 0, fmt.Errorf("%w: no variance source given", core.ErrAmbiguousInput)

	default:
		return 0, 0, fmt.Errorf("%w: unsupported variance source %T", core.ErrAmbiguousInput, source)
	}
}
