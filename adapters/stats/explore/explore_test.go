package explore

import (
	"math"
	"testing"

	"anovakit/domain/core"
	"anovakit/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram_CountsAndDensity(t *testing.T) {
	data := []float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4, math.NaN()}

	h, err := Histogram(data, 3)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3, 4}, h.Edges)
	assert.Equal(t, []float64{1, 2, 7}, h.Counts)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.7}, h.Density, 1e-12)

	var area float64
	for i, d := range h.Density {
		area += d * (h.Edges[i+1] - h.Edges[i])
	}
	assert.InDelta(t, 1.0, area, 1e-12)
}

func TestHistogram_KDEIntegratesToOne(t *testing.T) {
	h, err := Histogram([]float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4}, DefaultBins)
	require.NoError(t, err)
	require.Len(t, h.KDE, kdePoints)
	assert.Greater(t, h.Bandwidth, 0.0)

	var area float64
	for i := 1; i < len(h.KDE); i++ {
		dx := h.KDE[i].X - h.KDE[i-1].X
		area += dx * (h.KDE[i].Y + h.KDE[i-1].Y) / 2
	}
	assert.InDelta(t, 1.0, area, 0.01)
}

func TestHistogram_ConstantData(t *testing.T) {
	h, err := Histogram([]float64{3, 3, 3}, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 3.5}, h.Edges)
	assert.Equal(t, []float64{3}, h.Counts)
	assert.Equal(t, []float64{1}, h.Density)
	assert.Nil(t, h.KDE)
}

func TestHistogram_InvalidInput(t *testing.T) {
	_, err := Histogram([]float64{1, 2}, 0)
	assert.True(t, core.IsInvalidArgument(err))

	_, err = Histogram([]float64{math.NaN()}, 5)
	assert.ErrorIs(t, err, core.ErrEmptySample)
}

func TestDotPlot_RoundsOntoScale(t *testing.T) {
	d, err := DotPlot([]float64{1.04, 0.96, 1.26, 2.0, math.NaN(), 1.0}, 0.1)
	require.NoError(t, err)

	require.Len(t, d.Stacks, 3)
	assert.InDelta(t, 1.0, d.Stacks[0].Value, 1e-9)
	assert.Equal(t, 3, d.Stacks[0].Count)
	assert.InDelta(t, 1.3, d.Stacks[1].Value, 1e-9)
	assert.Equal(t, 1, d.Stacks[1].Count)
	assert.InDelta(t, 2.0, d.Stacks[2].Value, 1e-9)

	_, err = DotPlot([]float64{1}, 0)
	assert.True(t, core.IsInvalidArgument(err))
}

func TestDotPlot_HugeMagnitudes(t *testing.T) {
	d, err := DotPlot([]float64{1e300, -1e300, 1e300, 2.5e19}, 0.1)
	require.NoError(t, err)

	require.Len(t, d.Stacks, 3)
	assert.InEpsilon(t, -1e300, d.Stacks[0].Value, 1e-12)
	assert.Equal(t, 1, d.Stacks[0].Count)
	assert.InEpsilon(t, 2.5e19, d.Stacks[1].Value, 1e-12)
	assert.InEpsilon(t, 1e300, d.Stacks[2].Value, 1e-12)
	assert.Equal(t, 2, d.Stacks[2].Count)
}

func TestProbPlot_PositionsAndLines(t *testing.T) {
	p, err := ProbPlot([]float64{3, 1, 2, math.NaN()})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, p.Sample)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75}, p.Positions, 1e-12)
	assert.InDelta(t, -0.6744897501960817, p.Theoretical[0], 1e-9)
	assert.InDelta(t, 0.0, p.Theoretical[1], 1e-12)
	assert.InDelta(t, 0.6744897501960817, p.Theoretical[2], 1e-9)

	// symmetric sample: the Q-Q line passes through (0, mean)
	assert.InDelta(t, 2.0, p.QQLine.Intercept, 1e-9)
	assert.InDelta(t, 1/0.6744897501960817, p.QQLine.Slope, 1e-9)
	assert.InDelta(t, 0.5, p.SamplePercentiles[1], 1e-12)

	_, err = ProbPlot([]float64{1})
	assert.True(t, core.IsPrecondition(err))
}

func TestBoxSummary(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		q1, q3   float64
		lo, hi   float64
		outliers []float64
	}{
		{"no outliers", []float64{8, 7, 6, 5, 4, 3, 2, 1}, 2.5, 6.5, 1, 8, nil},
		{"high outlier", []float64{1, 2, 3, 4, 5, 6, 7, 30}, 2.5, 6.5, 1, 7, []float64{30}},
		{"single value", []float64{4}, 4, 4, 4, 4, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := BoxSummary(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.q1, b.Q1)
			assert.Equal(t, tc.q3, b.Q3)
			assert.Equal(t, tc.q3-tc.q1, b.IQR)
			assert.Equal(t, tc.lo, b.LowerWhisker)
			assert.Equal(t, tc.hi, b.UpperWhisker)
			assert.Equal(t, tc.outliers, b.Outliers)
		})
	}
}

func fertilizerTable(t *testing.T) *dataset.Table {
	t.Helper()
	table := dataset.NewTable("fertilizer")
	require.NoError(t, table.AddColumn("a", []float64{10, 12, 14, math.NaN()}))
	require.NoError(t, table.AddColumn("b", []float64{20, 22, 24, 26}))
	require.NoError(t, table.AddColumn("c", []float64{math.NaN(), 2, 3, 4}))
	return table
}

func TestMarginalMeans(t *testing.T) {
	table := fertilizerTable(t)

	m, err := MarginalMeans(table, []core.ColumnKey{"a", "b"}, true)
	require.NoError(t, err)

	assert.InDelta(t, (36.0+92.0)/7, m.GrandMean, 1e-12)
	require.Len(t, m.GroupMeans, 2)
	assert.Equal(t, "a", m.GroupMeans[0].Group)
	assert.InDelta(t, 12.0, m.GroupMeans[0].Mean, 1e-12)
	assert.Equal(t, 3, m.GroupMeans[0].N)
	assert.InDelta(t, 23.0, m.GroupMeans[1].Mean, 1e-12)
	assert.Equal(t, "a, b", m.Names())

	require.Len(t, m.RowMeans, 4)
	assert.InDelta(t, 15.0, m.RowMeans[0].Mean, 1e-12)
	assert.InDelta(t, 26.0, m.RowMeans[3].Mean, 1e-12)
	assert.Equal(t, 1, m.RowMeans[3].N)
}

func TestMarginalMeans_Errors(t *testing.T) {
	table := fertilizerTable(t)

	_, err := MarginalMeans(table, nil, false)
	assert.True(t, core.IsInvalidArgument(err))

	_, err = MarginalMeans(table, []core.ColumnKey{"a", "missing"}, false)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestProfile_AllViewsPerColumn(t *testing.T) {
	table := fertilizerTable(t)

	briefs, err := Profile(table, []core.ColumnKey{"b", "c"}, DefaultProfileOptions())
	require.NoError(t, err)
	require.Len(t, briefs, 2)

	b := briefs[0]
	assert.Equal(t, "b", b.Column)
	assert.Equal(t, 4, b.SampleSize)
	assert.Equal(t, 0, b.Missing)
	assert.InDelta(t, 23.0, b.Summary.Mean, 1e-12)
	assert.Equal(t, 20.0, b.Summary.Min)
	assert.Equal(t, 26.0, b.Summary.Max)
	assert.Equal(t, b.Box.Q1, b.Summary.Q25)
	assert.Len(t, b.Histogram.Counts, DefaultBins)
	assert.Len(t, b.ProbPlot.Sample, 4)
	assert.Equal(t, "symmetric", b.Shape())
	assert.Contains(t, b.Line(), "b: n=4 missing=0")

	assert.Equal(t, 1, briefs[1].Missing)
}

func TestProfile_UnknownColumn(t *testing.T) {
	_, err := Profile(fertilizerTable(t), []core.ColumnKey{"zzz"}, ProfileOptions{})
	assert.True(t, core.IsNotFoundError(err))
}
