package hypothesis

import (
	"testing"

	"anovakit/domain/core"
	"anovakit/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideZ(t *testing.T) {
	tests := []struct {
		name   string
		result stats.ZResult
		tail   stats.Tail
		want   stats.Decision
	}{
		{"two-sided significant", stats.ZResult{Statistic: 2.5, PValue: 0.012}, stats.TailBoth, stats.RejectNull},
		{"two-sided not significant", stats.ZResult{Statistic: 1.2, PValue: 0.23}, stats.TailBoth, stats.FailToReject},
		{"left with negative z", stats.ZResult{Statistic: -2.1, PValue: 0.018}, stats.TailLeft, stats.RejectNull},
		{"left with positive z", stats.ZResult{Statistic: 2.1, PValue: 0.018}, stats.TailLeft, stats.FailToReject},
		{"right with positive z", stats.ZResult{Statistic: 2.1, PValue: 0.018}, stats.TailRight, stats.RejectNull},
		{"right with negative z", stats.ZResult{Statistic: -2.1, PValue: 0.018}, stats.TailRight, stats.FailToReject},
		{"right with zero z", stats.ZResult{Statistic: 0, PValue: 0.001}, stats.TailRight, stats.FailToReject},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecideZ(tc.result, 0.95, tc.tail)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecideZ_Errors(t *testing.T) {
	_, err := DecideZ(stats.ZResult{}, 1, stats.TailBoth)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = DecideZ(stats.ZResult{}, 0.95, stats.Tail(0))
	assert.ErrorIs(t, err, core.ErrUnknownTail)
}

func TestDecideChiSquare(t *testing.T) {
	inside := stats.ChiSquareResult{Tail: stats.TailBoth, Statistic: 20, LeftCritical: 8.9, RightCritical: 32.9, PValue: 0.01}
	got, err := DecideChiSquare(inside, 0.95, stats.TailBoth)
	require.NoError(t, err)
	assert.Equal(t, stats.FailToReject, got, "statistic inside the critical band must not reject")

	above := inside
	above.Statistic = 40
	got, err = DecideChiSquare(above, 0.95, stats.TailBoth)
	require.NoError(t, err)
	assert.Equal(t, stats.RejectNull, got)

	below := inside
	below.Statistic = 3
	got, err = DecideChiSquare(below, 0.95, stats.TailBoth)
	require.NoError(t, err)
	assert.Equal(t, stats.RejectNull, got)

	notSignificant := above
	notSignificant.PValue = 0.2
	got, err = DecideChiSquare(notSignificant, 0.95, stats.TailBoth)
	require.NoError(t, err)
	assert.Equal(t, stats.FailToReject, got)

	oneSided := stats.ChiSquareResult{Tail: stats.TailRight, Statistic: 20, Critical: 30, PValue: 0.03}
	got, err = DecideChiSquare(oneSided, 0.95, stats.TailRight)
	require.NoError(t, err)
	assert.Equal(t, stats.RejectNull, got, "one-sided decision uses the p-value alone")

	got, err = DecideChiSquare(oneSided, 0.95, stats.TailLeft)
	require.NoError(t, err)
	assert.Equal(t, stats.RejectNull, got)
}

func TestDecideF(t *testing.T) {
	got, err := DecideF(stats.FResult{Tail: stats.TailBoth, PValue: 0.38}, 0.95)
	require.NoError(t, err)
	assert.Equal(t, stats.FailToReject, got)

	got, err = DecideF(stats.FResult{Tail: stats.TailRight, PValue: 0.01}, 0.95)
	require.NoError(t, err)
	assert.Equal(t, stats.RejectNull, got)

	_, err = DecideF(stats.FResult{}, -0.5)
	assert.Error(t, err)
}

func TestChiSquare_EndToEndDecision(t *testing.T) {
	res, err := ChiSquareVarianceTest(1, 0.95, stats.TailBoth, stats.ByData{Data: []float64{4, 6, 8, 5, 7}})
	require.NoError(t, err)

	// p = 0.040 < 0.05 but 10.0 lies inside [0.484, 11.14]
	got, err := DecideChiSquare(res, 0.95, stats.TailBoth)
	require.NoError(t, err)
	assert.Equal(t, stats.FailToReject, got)
}
