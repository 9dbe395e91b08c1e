package hypothesis

import (
	"math"
	"testing"

	"anovakit/domain/dataset"
	"anovakit/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestProperty_ProportionTwoSidedPValue(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sample := rapid.SliceOfN(rapid.Float64Range(0, 1), 1, 50).Draw(rt, "sample")
		p0 := rapid.Float64Range(0.01, 0.99).Draw(rt, "p0")

		res, err := OneProportionZTest(sample, p0, stats.TailBoth, stats.NullDrop)
		require.NoError(rt, err)

		cdf := dist.NormalCDF(res.Statistic)
		assert.InDelta(rt, 2*math.Min(cdf, 1-cdf), res.PValue, 1e-9)
		assert.GreaterOrEqual(rt, res.PValue, 0.0)
		assert.LessOrEqual(rt, res.PValue, 1.0)
	})
}

func TestProperty_TwoSidedSymmetricInZ(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		z := rapid.Float64Range(-8, 8).Draw(rt, "z")
		assert.Equal(rt, normalPValue(z, stats.TailBoth), normalPValue(-z, stats.TailBoth))
	})
}

func TestProperty_ChiSquareCriticalOrdering(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		confidence := rapid.Float64Range(0.5, 0.999).Draw(rt, "confidence")
		dof := rapid.IntRange(1, 200).Draw(rt, "dof")
		s := rapid.Float64Range(0.01, 10).Draw(rt, "s")

		res, err := ChiSquareVarianceTest(1, confidence, stats.TailBoth, stats.ByStats{StdDev: s, DDOF: dof})
		require.NoError(rt, err)
		assert.Less(rt, res.LeftCritical, res.RightCritical)
	})
}

func TestProperty_FTwoSidedPValue(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pair := stats.FromVariances{
			Var1: rapid.Float64Range(0.01, 100).Draw(rt, "var1"),
			Var2: rapid.Float64Range(0.01, 100).Draw(rt, "var2"),
			N1:   rapid.IntRange(2, 100).Draw(rt, "n1"),
			N2:   rapid.IntRange(2, 100).Draw(rt, "n2"),
		}

		res, err := FTest(pair, 0.95, stats.TailBoth)
		require.NoError(rt, err)

		cdf := dist.FCDF(res.Statistic, res.DOF2, res.DOF1)
		assert.InDelta(rt, 2*math.Min(cdf, 1-cdf), res.PValue, 1e-12)
		assert.LessOrEqual(rt, res.PValue, 1.0)
	})
}

func TestProperty_NullPoliciesFinite(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sample := rapid.SliceOfN(rapid.Float64Range(0, 1), 2, 30).Draw(rt, "sample")
		gap := rapid.IntRange(0, len(sample)-1).Draw(rt, "gap")
		sample[gap] = math.NaN()

		byMean, err := OneProportionZTest(sample, 0.5, stats.TailBoth, stats.NullMean)
		require.NoError(rt, err)
		byMedian, err := OneProportionZTest(sample, 0.5, stats.TailBoth, stats.NullMedian)
		require.NoError(rt, err)

		assert.False(rt, math.IsNaN(byMean.Statistic) || math.IsInf(byMean.Statistic, 0))
		assert.False(rt, math.IsNaN(byMedian.Statistic) || math.IsInf(byMedian.Statistic, 0))

		present := dataset.DropMissing(sample)
		mean, median := meanMedian(present)
		if mean == median {
			assert.InDelta(rt, byMean.Statistic, byMedian.Statistic, 1e-9)
		}
	})
}

func meanMedian(data []float64) (float64, float64) {
	resolved, _ := ResolveMissing(append(data, math.NaN()), stats.NullMean)
	mean := resolved[len(resolved)-1]
	resolved, _ = ResolveMissing(append(data, math.NaN()), stats.NullMedian)
	return mean, resolved[len(resolved)-1]
}
