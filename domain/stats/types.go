package stats

import (
	"fmt"
	"strings"

	"anovakit/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// Tail selects the direction of the alternative hypothesis.
// The zero value is deliberately invalid so an unset tail is caught.
type Tail int

const (
	TailLeft  Tail = iota + 1 // "l", "smaller"
	TailRight                 // "r", "larger"
	TailBoth                  // "lr", "two-sided"
)

// String returns the short tail code used by the decision predicates
func (t Tail) String() string {
	switch t {
	case TailLeft:
		return "l"
	case TailRight:
		return "r"
	case TailBoth:
		return "lr"
	default:
		return fmt.Sprintf("Tail(%d)", int(t))
	}
}

// Alternative returns the long keyword (smaller, larger, two-sided)
func (t Tail) Alternative() string {
	switch t {
	case TailLeft:
		return "smaller"
	case TailRight:
		return "larger"
	case TailBoth:
		return "two-sided"
	default:
		return t.String()
	}
}

// Valid reports whether t is one of the three tails
func (t Tail) Valid() bool {
	return t >= TailLeft && t <= TailBoth
}

// ParseAlternative parses the long keywords: smaller, larger, two-sided.
func ParseAlternative(s string) (Tail, error) {
	switch strings.TrimSpace(s) {
	case "smaller":
		return TailLeft, nil
	case "larger":
		return TailRight, nil
	case "two-sided":
		return TailBoth, nil
	}
	return 0, core.NewTailError(s)
}

// ParseTailCode parses the short codes: l, r, lr.
func ParseTailCode(s string) (Tail, error) {
	switch strings.TrimSpace(s) {
	case "l":
		return TailLeft, nil
	case "r":
		return TailRight, nil
	case "lr":
		return TailBoth, nil
	}
	return 0, core.NewTailError(s)
}

// ParseMeansAlternative parses the keywords accepted by the z-test for means.
// Note that "l" means larger here, not left.
func ParseMeansAlternative(s string) (Tail, error) {
	switch strings.TrimSpace(s) {
	case "two-sided", "2-sided", "2s":
		return TailBoth, nil
	case "larger", "l":
		return TailRight, nil
	case "smaller", "s":
		return TailLeft, nil
	}
	return 0, core.NewTailError(s)
}

// ParseTail accepts either the long keywords or the short codes
func ParseTail(s string) (Tail, error) {
	if t, err := ParseAlternative(s); err == nil {
		return t, nil
	}
	return ParseTailCode(s)
}

// Decision is the outcome of comparing a test result against a significance level
type Decision int

const (
	RejectNull Decision = iota + 1
	FailToReject
)

func (d Decision) String() string {
	switch d {
	case RejectNull:
		return "reject_null"
	case FailToReject:
		return "fail_to_reject"
	default:
		return "undecided"
	}
}

// Rejected reports whether the null hypothesis was rejected
func (d Decision) Rejected() bool {
	return d == RejectNull
}

// NullPolicy controls how missing (NaN) entries of a sample are resolved
type NullPolicy int

const (
	NullDrop   NullPolicy = iota // remove missing entries
	NullMean                     // replace with the mean of the present entries
	NullMedian                   // replace with the median of the present entries
)

// ParseNullPolicy maps "mean" and "median"; anything else drops missing entries
func ParseNullPolicy(s string) NullPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean":
		return NullMean
	case "median":
		return NullMedian
	default:
		return NullDrop
	}
}

func (p NullPolicy) String() string {
	switch p {
	case NullMean:
		return "mean"
	case NullMedian:
		return "median"
	default:
		return "drop"
	}
}

// ============================================================================
// INPUT VARIANTS
// ============================================================================

// VarianceSource is how the chi-square variance test receives the sample spread.
// Exactly one of ByStats, ByData or ByDataWithDDOF.
type VarianceSource interface {
	varianceSource()
}

// ByStats supplies the sample standard deviation and degrees of freedom directly
type ByStats struct {
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	DDOF   int     `json:"ddof" yaml:"ddof"`
}

// ByData computes the variance from raw data with n-1 degrees of freedom
type ByData struct {
	Data []float64 `json:"data" yaml:"data"`
}

// ByDataWithDDOF computes the variance from raw data but overrides the degrees of freedom
type ByDataWithDDOF struct {
	Data []float64 `json:"data" yaml:"data"`
	DDOF int       `json:"ddof" yaml:"ddof"`
}

func (ByStats) varianceSource()        {}
func (ByData) varianceSource()         {}
func (ByDataWithDDOF) varianceSource() {}

// VariancePair is how the F-test receives the two spreads.
type VariancePair interface {
	variancePair()
}

// FromVariances supplies two variances with their sample sizes
type FromVariances struct {
	Var1 float64 `json:"var1" yaml:"var1"`
	Var2 float64 `json:"var2" yaml:"var2"`
	N1   int     `json:"n1" yaml:"n1"`
	N2   int     `json:"n2" yaml:"n2"`
}

// FromSamples computes variances and sizes from two raw samples
type FromSamples struct {
	X1 []float64 `json:"x1" yaml:"x1"`
	X2 []float64 `json:"x2" yaml:"x2"`
}

func (FromVariances) variancePair() {}
func (FromSamples) variancePair()   {}

// ============================================================================
// TEST RESULTS
// ============================================================================

// ZResult is the output of the z-family tests
type ZResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// Values returns (z, p)
func (r ZResult) Values() []float64 {
	return []float64{r.Statistic, r.PValue}
}

// ChiSquareResult is the output of the one-population variance test.
// Critical is set for one-sided tails, LeftCritical/RightCritical for TailBoth.
type ChiSquareResult struct {
	Tail          Tail    `json:"tail"`
	Statistic     float64 `json:"statistic"`
	Critical      float64 `json:"critical,omitempty"`
	LeftCritical  float64 `json:"left_critical,omitempty"`
	RightCritical float64 `json:"right_critical,omitempty"`
	PValue        float64 `json:"p_value"`
	DOF           int     `json:"dof"`
}

// Values returns (stat, crit, p) for one-sided tails and (stat, left, right, p) for lr
func (r ChiSquareResult) Values() []float64 {
	if r.Tail == TailBoth {
		return []float64{r.Statistic, r.LeftCritical, r.RightCritical, r.PValue}
	}
	return []float64{r.Statistic, r.Critical, r.PValue}
}

// FResult is the output of the F-test for equality of variances.
// Critical is set for one-sided tails, LeftCritical/RightCritical for TailBoth.
type FResult struct {
	Tail          Tail    `json:"tail"`
	Statistic     float64 `json:"statistic"`
	PValue        float64 `json:"p_value"`
	Critical      float64 `json:"critical,omitempty"`
	LeftCritical  float64 `json:"left_critical,omitempty"`
	RightCritical float64 `json:"right_critical,omitempty"`
	DOF1          int     `json:"dof1"`
	DOF2          int     `json:"dof2"`
}

// Values returns (F, p, crit) for one-sided tails and (F, p, left, right) for two-sided
func (r FResult) Values() []float64 {
	if r.Tail == TailBoth {
		return []float64{r.Statistic, r.PValue, r.LeftCritical, r.RightCritical}
	}
	return []float64{r.Statistic, r.PValue, r.Critical}
}
