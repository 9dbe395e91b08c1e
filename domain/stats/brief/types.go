package brief

import (
	"fmt"
	"strings"
	"time"
)

// ColumnBrief bundles every exploratory view of one numeric column.
// It carries the numbers behind the plots, never the rendering.
type ColumnBrief struct {
	// Core Identification
	Column     string `json:"column"`
	Source     string `json:"source,omitempty"`
	SampleSize int    `json:"sample_size"`
	Missing    int    `json:"missing"`

	Summary   SummaryStats `json:"summary"`
	Histogram Histogram    `json:"histogram"`
	DotPlot   DotPlot      `json:"dot_plot"`
	ProbPlot  ProbPlot     `json:"prob_plot"`
	Box       BoxSummary   `json:"box"`

	ComputedAt time.Time `json:"computed_at"`
}

// SummaryStats contains basic descriptive statistics
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// CurvePoint is one evaluated point of a smooth curve
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Histogram holds equal-width bins with a Gaussian kernel density overlay.
// len(Edges) == len(Counts)+1.
type Histogram struct {
	Edges     []float64    `json:"edges"`
	Counts    []float64    `json:"counts"`
	Density   []float64    `json:"density"`
	KDE       []CurvePoint `json:"kde,omitempty"`
	Bandwidth float64      `json:"bandwidth"`
}

// DotStack is one column of dots at a rounded value
type DotStack struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DotPlot stacks observations after rounding to Scale
type DotPlot struct {
	Scale  float64    `json:"scale"`
	Stacks []DotStack `json:"stacks"`
}

// ReferenceLine is a least-squares fit y = Intercept + Slope*x
type ReferenceLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// ProbPlot holds the data for normal Q-Q and P-P plots.
// All slices are aligned with the ordered sample.
type ProbPlot struct {
	Positions         []float64     `json:"positions"`
	Theoretical       []float64     `json:"theoretical"`
	Sample            []float64     `json:"sample"`
	SamplePercentiles []float64     `json:"sample_percentiles"`
	QQLine            ReferenceLine `json:"qq_line"`
	PPLine            ReferenceLine `json:"pp_line"`
}

// BoxSummary is the five-number box with 1.5 IQR whiskers
type BoxSummary struct {
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	IQR          float64   `json:"iqr"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// GroupMean is the mean of one treatment column
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
	N     int     `json:"n"`
}

// RowMean is the mean of one block (row) across treatment columns
type RowMean struct {
	Row  int     `json:"row"`
	Mean float64 `json:"mean"`
	N    int     `json:"n"`
}

// MarginalMeans backs the treatment and block mean plots of a two-way layout
type MarginalMeans struct {
	GrandMean  float64     `json:"grand_mean"`
	GroupMeans []GroupMean `json:"group_means"`
	RowMeans   []RowMean   `json:"row_means,omitempty"`
}

// Line renders a compact one-line summary for logs and reports
func (b ColumnBrief) Line() string {
	return fmt.Sprintf("%s: n=%d missing=%d mean=%.4g sd=%.4g median=%.4g outliers=%d",
		b.Column, b.SampleSize, b.Missing, b.Summary.Mean, b.Summary.StdDev, b.Summary.Median, len(b.Box.Outliers))
}

// Shape labels the column by its quartile asymmetry
func (b ColumnBrief) Shape() string {
	lower := b.Box.Median - b.Box.Q1
	upper := b.Box.Q3 - b.Box.Median
	switch {
	case b.Box.IQR == 0:
		return "degenerate"
	case upper > 2*lower:
		return "right-skewed"
	case lower > 2*upper:
		return "left-skewed"
	default:
		return "symmetric"
	}
}

// Names lists the groups in order
func (m MarginalMeans) Names() string {
	names := make([]string, len(m.GroupMeans))
	for i, g := range m.GroupMeans {
		names[i] = g.Group
	}
	return strings.Join(names, ", ")
}
