package hypothesis

import (
	"anovakit/domain/stats"
)

// DecideZ applies the z-family rule: a one-sided tail rejects only when the
// statistic points in its direction and p < alpha; two-sided rejects on p < alpha.
func DecideZ(result stats.ZResult, confidence float64, tail stats.Tail) (stats.Decision, error) {
	if err := validateConfidence(confidence); err != nil {
		return 0, err
	}
	if err := validateTail(tail); err != nil {
		return 0, err
	}

	alpha := Significance(confidence)
	significant := result.PValue < alpha

	switch {
	case tail == stats.TailLeft && result.Statistic < 0 && significant,
		tail == stats.TailRight && result.Statistic > 0 && significant,
		tail == stats.TailBoth && significant:
		return stats.RejectNull, nil
	}
	return stats.FailToReject, nil
}

// DecideChiSquare rejects when p < alpha; for lr the statistic must also fall
// outside [LeftCritical, RightCritical].
func DecideChiSquare(result stats.ChiSquareResult, confidence float64, tail stats.Tail) (stats.Decision, error) {
	if err := validateConfidence(confidence); err != nil {
		return 0, err
	}
	if err := validateTail(tail); err != nil {
		return 0, err
	}

	if result.PValue >= Significance(confidence) {
		return stats.FailToReject, nil
	}
	if tail == stats.TailBoth && result.Statistic >= result.LeftCritical && result.Statistic <= result.RightCritical {
		return stats.FailToReject, nil
	}
	return stats.RejectNull, nil
}

// DecideF rejects when p < alpha
func DecideF(result stats.FResult, confidence float64) (stats.Decision, error) {
	if err := validateConfidence(confidence); err != nil {
		return 0, err
	}
	if result.PValue < Significance(confidence) {
		return stats.RejectNull, nil
	}
	return stats.FailToReject, nil
}
