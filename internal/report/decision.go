// Package report renders test decisions and battery or profile results as
// markdown, optionally converted to HTML.
package report

import (
	"fmt"
	"math"

	"anovakit/domain/stats"
)

// DecisionMessage states the outcome of a test at the given confidence level.
// The significance level is shown rounded to two decimals.
func DecisionMessage(decision stats.Decision, confidence float64) string {
	alpha := math.Round((1-confidence)*100) / 100
	if decision.Rejected() {
		return fmt.Sprintf("Researcher claim is right. Thus, rejected the Null Hypothesis at %v L.O.C and %v L.O.S", confidence, alpha)
	}
	return fmt.Sprintf("Researcher claim is wrong. Thus, fail to reject the Null Hypothesis at %v L.O.C and %v L.O.S", confidence, alpha)
}
