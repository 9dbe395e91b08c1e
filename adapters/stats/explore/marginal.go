package explore

import (
	"math"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats/brief"

	"gonum.org/v1/gonum/stat"
)

// MarginalMeans computes the grand mean over the chosen treatment columns, one
// mean per column and, when withRows is set, one mean per block (row).
// Missing cells are skipped everywhere; rows with no present cells are left out.
func MarginalMeans(table *dataset.Table, groups []core.ColumnKey, withRows bool) (brief.MarginalMeans, error) {
	if table == nil {
		return brief.MarginalMeans{}, core.NewArgumentError("table", "nil table")
	}
	if len(groups) == 0 {
		return brief.MarginalMeans{}, core.NewArgumentError("groups", "at least one group column is required")
	}

	var all []float64
	out := brief.MarginalMeans{GroupMeans: make([]brief.GroupMean, 0, len(groups))}
	for _, key := range groups {
		col, err := table.Column(key)
		if err != nil {
			return brief.MarginalMeans{}, err
		}
		present := dataset.DropMissing(col)
		if len(present) == 0 {
			return brief.MarginalMeans{}, core.NewPreconditionError("group " + key.String() + " has no values")
		}
		out.GroupMeans = append(out.GroupMeans, brief.GroupMean{
			Group: key.String(),
			Mean:  stat.Mean(present, nil),
			N:     len(present),
		})
		all = append(all, present...)
	}
	out.GrandMean = stat.Mean(all, nil)

	if !withRows {
		return out, nil
	}
	for i := 0; i < table.RowCount(); i++ {
		row, err := table.Row(i, groups...)
		if err != nil {
			return brief.MarginalMeans{}, err
		}
		present := dataset.DropMissing(row)
		if len(present) == 0 {
			continue
		}
		mean := stat.Mean(present, nil)
		if math.IsNaN(mean) {
			continue
		}
		out.RowMeans = append(out.RowMeans, brief.RowMean{Row: i, Mean: mean, N: len(present)})
	}
	return out, nil
}
