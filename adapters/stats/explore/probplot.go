package explore

import (
	"math"

	"anovakit/domain/core"
	"anovakit/domain/stats/brief"

	"gonum.org/v1/gonum/stat"
)

// ProbPlot computes normal Q-Q and P-P plot data for the present values.
// Plotting positions are i/(n+1); reference lines are least-squares fits.
func ProbPlot(data []float64) (brief.ProbPlot, error) {
	x := sortedPresent(data)
	n := len(x)
	if n < 2 {
		return brief.ProbPlot{}, core.NewPreconditionError("probability plot needs at least two values")
	}

	mean, sd := stat.MeanStdDev(x, nil)
	positions := make([]float64, n)
	theoretical := make([]float64, n)
	percentiles := make([]float64, n)
	for i, v := range x {
		positions[i] = float64(i+1) / float64(n+1)
		theoretical[i] = dist.NormalQuantile(positions[i])
		if sd > 0 {
			percentiles[i] = dist.NormalCDF((v - mean) / sd)
		} else {
			percentiles[i] = 0.5
		}
	}

	out := brief.ProbPlot{
		Positions:         positions,
		Theoretical:       theoretical,
		Sample:            x,
		SamplePercentiles: percentiles,
	}
	out.QQLine = fitLine(theoretical, x)
	out.PPLine = fitLine(positions, percentiles)
	return out, nil
}

func fitLine(x, y []float64) brief.ReferenceLine {
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return brief.ReferenceLine{}
	}
	return brief.ReferenceLine{Intercept: alpha, Slope: beta}
}
