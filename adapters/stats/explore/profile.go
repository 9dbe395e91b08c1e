// Package explore computes the numbers behind the pre-ANOVA exploratory plots:
// histograms with density curves, dot plots, normal probability plots, box
// plots and marginal mean graphs. Nothing here renders.
package explore

import (
	"fmt"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats/brief"

	mstats "github.com/montanaflynn/stats"
)

// ProfileOptions tunes the per-column views
type ProfileOptions struct {
	Bins     int
	DotScale float64
}

// DefaultProfileOptions returns the histogram and dot plot defaults
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{Bins: DefaultBins, DotScale: DefaultDotScale}
}

// Profile builds every exploratory view for each requested column, in order.
// A column needs at least two present values.
func Profile(table *dataset.Table, cols []core.ColumnKey, opts ProfileOptions) ([]brief.ColumnBrief, error) {
	if table == nil {
		return nil, core.NewArgumentError("table", "nil table")
	}
	if opts.Bins == 0 {
		opts.Bins = DefaultBins
	}
	if opts.DotScale == 0 {
		opts.DotScale = DefaultDotScale
	}

	briefs := make([]brief.ColumnBrief, 0, len(cols))
	for _, key := range cols {
		b, err := profileColumn(table, key, opts)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", key, err)
		}
		briefs = append(briefs, b)
	}
	return briefs, nil
}

func profileColumn(table *dataset.Table, key core.ColumnKey, opts ProfileOptions) (brief.ColumnBrief, error) {
	col, err := table.Column(key)
	if err != nil {
		return brief.ColumnBrief{}, err
	}
	present := dataset.DropMissing(col)

	b := brief.ColumnBrief{
		Column:     key.String(),
		Source:     table.Source,
		SampleSize: len(present),
		Missing:    len(col) - len(present),
		ComputedAt: core.Now().Time(),
	}
	if b.Summary, err = summarize(present); err != nil {
		return b, err
	}
	if b.Histogram, err = Histogram(present, opts.Bins); err != nil {
		return b, err
	}
	if b.DotPlot, err = DotPlot(present, opts.DotScale); err != nil {
		return b, err
	}
	if b.ProbPlot, err = ProbPlot(present); err != nil {
		return b, err
	}
	if b.Box, err = BoxSummary(present); err != nil {
		return b, err
	}
	b.Summary.Q25, b.Summary.Q75 = b.Box.Q1, b.Box.Q3
	return b, nil
}

func summarize(x []float64) (brief.SummaryStats, error) {
	if len(x) == 0 {
		return brief.SummaryStats{}, core.ErrEmptySample
	}
	var s brief.SummaryStats
	var err error
	if s.Mean, err = mstats.Mean(x); err != nil {
		return s, err
	}
	if s.StdDev, err = mstats.StandardDeviationSample(x); err != nil {
		return s, err
	}
	if s.Min, err = mstats.Min(x); err != nil {
		return s, err
	}
	if s.Max, err = mstats.Max(x); err != nil {
		return s, err
	}
	if s.Median, err = mstats.Median(x); err != nil {
		return s, err
	}
	return s, nil
}
