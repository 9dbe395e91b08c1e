package run

import (
	"fmt"

	"anovakit/domain/core"
)

// CodeVersion is stamped into every run fingerprint; set with -ldflags at build time
var CodeVersion = "dev"

// RunFingerprint ensures deterministic replay: two runs with equal fingerprints
// evaluated the same plan against the same table contents and must agree.
type RunFingerprint struct {
	PlanHash    core.Hash `json:"plan_hash"`
	TableHash   core.Hash `json:"table_hash"`
	Confidence  float64   `json:"confidence"` // fallback for requests and plans without one
	CodeVersion string    `json:"code_version"`
	Fingerprint core.Hash `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(planHash, tableHash core.Hash, confidence float64, codeVersion string) RunFingerprint {
	return RunFingerprint{
		PlanHash:    planHash,
		TableHash:   tableHash,
		Confidence:  confidence,
		CodeVersion: codeVersion,
		Fingerprint: computeRunFingerprint(planHash, tableHash, confidence, codeVersion),
	}
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(planHash, tableHash core.Hash, confidence float64, codeVersion string) core.Hash {
	data := fmt.Sprintf("plan:%s|table:%s|confidence:%v|code:%s",
		planHash, tableHash, confidence, codeVersion)
	return core.NewHash([]byte(data))
}
