package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides the reference distributions used by the hypothesis tests.
// Quantile methods expect p in [0,1]; callers validate confidence levels first.
type StatisticalDistributions struct{}

// New creates a new distributions utility
func New() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// NormalCDF computes cumulative distribution function for standard normal
func (sd *StatisticalDistributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalSurvival computes 1 - CDF for standard normal without cancellation in the upper tail
func (sd *StatisticalDistributions) NormalSurvival(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func (sd *StatisticalDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ChiSquareCDF computes the chi-square CDF with dof degrees of freedom
func (sd *StatisticalDistributions) ChiSquareCDF(x float64, dof int) float64 {
	if x <= 0 {
		return 0
	}
	return distuv.ChiSquared{K: float64(dof)}.CDF(x)
}

// ChiSquareQuantile computes the chi-square percent point function
func (sd *StatisticalDistributions) ChiSquareQuantile(p float64, dof int) float64 {
	return distuv.ChiSquared{K: float64(dof)}.Quantile(p)
}

// FCDF computes the F-distribution CDF with (d1, d2) degrees of freedom
func (sd *StatisticalDistributions) FCDF(x float64, d1, d2 int) float64 {
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	return distuv.F{D1: float64(d1), D2: float64(d2)}.CDF(x)
}

// FQuantile computes the F-distribution percent point function
func (sd *StatisticalDistributions) FQuantile(p float64, d1, d2 int) float64 {
	return distuv.F{D1: float64(d1), D2: float64(d2)}.Quantile(p)
}

// NormalPDF is the density of N(mu, sigma), used for kernel density curves
func (sd *StatisticalDistributions) NormalPDF(x, mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}
