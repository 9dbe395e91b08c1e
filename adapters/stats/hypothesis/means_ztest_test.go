package hypothesis

import (
	"math"
	"testing"

	"anovakit/domain/core"
	"anovakit/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	meansX1 = []float64{2, 4, 4, 4, 5, 5, 7, 9} // mean 5, population variance 4
	meansX2 = []float64{1, 2, 3, 4, 5}          // mean 3, population variance 2
)

func TestMeansZTest_OneSample(t *testing.T) {
	cfg := DefaultMeansZTestConfig()
	cfg.Value = 4

	res, err := MeansZTest(meansX1, nil, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 1.3228756555322954, res.Statistic, 1e-9)
	assert.InDelta(t, 0.18587673236587593, res.PValue, 1e-9)

	cfg.Tail = stats.TailRight
	res, err = MeansZTest(meansX1, nil, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.09293836618293796, res.PValue, 1e-9)
}

func TestMeansZTest_TwoSample(t *testing.T) {
	cfg := DefaultMeansZTestConfig()

	res, err := MeansZTest(meansX1, meansX2, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2.1081851067789197, res.Statistic, 1e-9)
	assert.InDelta(t, 0.03501498101966251, res.PValue, 1e-9)

	cfg.Tail = stats.TailLeft
	res, err = MeansZTest(meansX1, meansX2, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.9824925094901688, res.PValue, 1e-9)
}

func TestMeansZTest_ValueShiftsDifference(t *testing.T) {
	cfg := DefaultMeansZTestConfig()
	cfg.Value = 2 // observed difference is exactly 2

	res, err := MeansZTest(meansX1, meansX2, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Statistic, 1e-12)
	assert.InDelta(t, 1, res.PValue, 1e-12)
}

func TestMeansZTest_DropsMissing(t *testing.T) {
	withGaps := append([]float64{math.NaN()}, meansX1...)

	a, err := MeansZTest(withGaps, meansX2, DefaultMeansZTestConfig())
	require.NoError(t, err)
	b, err := MeansZTest(meansX1, meansX2, DefaultMeansZTestConfig())
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestMeansZTest_Errors(t *testing.T) {
	cfg := DefaultMeansZTestConfig()
	cfg.UseVar = "pooled"
	_, err := MeansZTest(meansX1, meansX2, cfg)
	assert.ErrorIs(t, err, core.ErrNotImplemented)

	cfg = DefaultMeansZTestConfig()
	cfg.Tail = 0
	_, err = MeansZTest(meansX1, meansX2, cfg)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	cfg = DefaultMeansZTestConfig()
	_, err = MeansZTest(nil, meansX2, cfg)
	assert.ErrorIs(t, err, core.ErrEmptySample)

	_, err = MeansZTest(meansX1, []float64{}, cfg)
	assert.ErrorIs(t, err, core.ErrEmptySample)

	_, err = MeansZTest([]float64{3}, nil, cfg)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	_, err = MeansZTest([]float64{3, 3, 3}, []float64{3, 3}, cfg)
	assert.ErrorIs(t, err, core.ErrNonPositiveSpread)
}
