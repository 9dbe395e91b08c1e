package dataset

import (
	"math"
	"testing"

	"anovakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable("yields")
	require.NoError(t, tbl.AddColumn("fertilizer_a", []float64{10, 12, math.NaN()}))
	require.NoError(t, tbl.AddColumn("fertilizer_b", []float64{9, 11, 13}))
	return tbl
}

func TestTable_AddAndReadColumns(t *testing.T) {
	tbl := newTestTable(t)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())
	assert.Equal(t, []core.ColumnKey{"fertilizer_a", "fertilizer_b"}, tbl.Columns())

	col, err := tbl.Column("fertilizer_b")
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 11, 13}, col)

	// returned slices are copies
	col[0] = 100
	again, _ := tbl.Column("fertilizer_b")
	assert.Equal(t, 9.0, again[0])
}

func TestTable_AddColumnValidation(t *testing.T) {
	tbl := newTestTable(t)

	err := tbl.AddColumn("short", []float64{1})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	err = tbl.AddColumn("fertilizer_a", []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	err = tbl.AddColumn("", []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestTable_RowAndMissing(t *testing.T) {
	tbl := newTestTable(t)

	row, err := tbl.Row(1, "fertilizer_b", "fertilizer_a")
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12}, row)

	_, err = tbl.Row(3, "fertilizer_a")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = tbl.Row(0, "unknown")
	assert.True(t, core.IsNotFoundError(err))

	missing, err := tbl.MissingCount("fertilizer_a")
	require.NoError(t, err)
	assert.Equal(t, 1, missing)

	_, err = tbl.Column("unknown")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestTable_FingerprintTracksContent(t *testing.T) {
	a := newTestTable(t)
	b := newTestTable(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, b.AddColumn("fertilizer_c", []float64{1, 2, 3}))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
