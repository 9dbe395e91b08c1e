package explore

import (
	"math"
	"sort"

	"anovakit/adapters/stats/distributions"
	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats/brief"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultBins matches the bin count of the usual histogram helpers
	DefaultBins = 10
	kdePoints   = 200
	kdeReach    = 3.0 // bandwidths beyond the data on each side
)

var dist = distributions.New()

// Histogram bins data into equal-width bins spanning [min, max] and overlays a
// Gaussian kernel density estimate. The last bin is closed on the right.
// Constant data gets a single bin [x-0.5, x+0.5].
func Histogram(data []float64, bins int) (brief.Histogram, error) {
	if bins <= 0 {
		return brief.Histogram{}, core.NewArgumentError("bins", "must be positive")
	}
	x := sortedPresent(data)
	if len(x) == 0 {
		return brief.Histogram{}, core.ErrEmptySample
	}

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
		bins = 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram needs the largest value strictly below the last divider
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)
	dividers[bins] = hi

	n := float64(len(x))
	width := (hi - lo) / float64(bins)
	density := make([]float64, bins)
	for i, c := range counts {
		density[i] = c / (n * width)
	}

	out := brief.Histogram{Edges: dividers, Counts: counts, Density: density}
	out.KDE, out.Bandwidth = gaussianKDE(x)
	return out, nil
}

// gaussianKDE evaluates a Gaussian kernel density with Scott's bandwidth.
// Returns nil when the sample has no spread.
func gaussianKDE(sorted []float64) ([]brief.CurvePoint, float64) {
	if len(sorted) < 2 {
		return nil, 0
	}
	sd := stat.StdDev(sorted, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil, 0
	}
	n := float64(len(sorted))
	bw := sd * math.Pow(n, -0.2)

	lo := sorted[0] - kdeReach*bw
	hi := sorted[len(sorted)-1] + kdeReach*bw
	grid := floats.Span(make([]float64, kdePoints), lo, hi)

	curve := make([]brief.CurvePoint, len(grid))
	for i, g := range grid {
		var sum float64
		for _, xi := range sorted {
			sum += dist.NormalPDF(g, xi, bw)
		}
		curve[i] = brief.CurvePoint{X: g, Y: sum / n}
	}
	return curve, bw
}

// sortedPresent drops missing values and returns an ascending copy
func sortedPresent(data []float64) []float64 {
	x := dataset.DropMissing(data)
	sort.Float64s(x)
	return x
}
