package explore

import (
	"anovakit/domain/core"
	"anovakit/domain/stats/brief"

	mstats "github.com/montanaflynn/stats"
)

const whiskerReach = 1.5

// BoxSummary computes Tukey quartiles (median of each half), the IQR and
// whiskers at the most extreme values within 1.5 IQR of the box.
func BoxSummary(data []float64) (brief.BoxSummary, error) {
	x := sortedPresent(data)
	if len(x) == 0 {
		return brief.BoxSummary{}, core.ErrEmptySample
	}
	if len(x) == 1 {
		v := x[0]
		return brief.BoxSummary{Q1: v, Median: v, Q3: v, LowerWhisker: v, UpperWhisker: v}, nil
	}

	q, err := mstats.Quartile(x)
	if err != nil {
		return brief.BoxSummary{}, err
	}
	iqr := q.Q3 - q.Q1
	lowFence, highFence := q.Q1-whiskerReach*iqr, q.Q3+whiskerReach*iqr

	box := brief.BoxSummary{Q1: q.Q1, Median: q.Q2, Q3: q.Q3, IQR: iqr, LowerWhisker: q.Q1, UpperWhisker: q.Q3}
	for _, v := range x {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
		}
	}
	for _, v := range x {
		if v >= lowFence {
			box.LowerWhisker = v
			break
		}
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] <= highFence {
			box.UpperWhisker = x[i]
			break
		}
	}
	return box, nil
}
