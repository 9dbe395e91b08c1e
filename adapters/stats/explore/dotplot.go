package explore

import (
	"math"
	"sort"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats/brief"
)

// DefaultDotScale rounds dot positions to one decimal
const DefaultDotScale = 0.1

// DotPlot rounds every value to the nearest multiple of scale and counts the
// dots stacked at each position, in ascending order.
func DotPlot(data []float64, scale float64) (brief.DotPlot, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return brief.DotPlot{}, core.NewArgumentError("scale", "must be positive and finite")
	}
	x := dataset.DropMissing(data)
	if len(x) == 0 {
		return brief.DotPlot{}, core.ErrEmptySample
	}

	// v/scale can exceed the int64 range, so steps stay float64
	counts := make(map[float64]int)
	for _, v := range x {
		counts[math.Round(v/scale)]++
	}
	steps := make([]float64, 0, len(counts))
	for s := range counts {
		steps = append(steps, s)
	}
	sort.Float64s(steps)

	stacks := make([]brief.DotStack, len(steps))
	for i, s := range steps {
		stacks[i] = brief.DotStack{Value: s * scale, Count: counts[s]}
	}
	return brief.DotPlot{Scale: scale, Stacks: stacks}, nil
}
