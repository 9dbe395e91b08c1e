package run

import (
	"anovakit/domain/core"
)

// Manifest describes one battery run: what was asked, on which table, and the
// fingerprint that makes it replayable.
type Manifest struct {
	RunID       core.RunID     `json:"run_id"`
	Plan        string         `json:"plan"`
	Table       string         `json:"table,omitempty"`
	Tests       int            `json:"tests"`
	Workers     int            `json:"workers"`
	Fingerprint RunFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewManifest creates a run manifest stamped with the current CodeVersion
func NewManifest(runID core.RunID, plan, table string, tests, workers int, planHash, tableHash core.Hash, confidence float64) *Manifest {
	return &Manifest{
		RunID:       runID,
		Plan:        plan,
		Table:       table,
		Tests:       tests,
		Workers:     workers,
		Fingerprint: NewRunFingerprint(planHash, tableHash, confidence, CodeVersion),
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewArgumentError("run_manifest", "run_id cannot be empty")
	}
	if m.Fingerprint.PlanHash.IsEmpty() {
		return core.NewArgumentError("run_manifest", "plan_hash cannot be empty")
	}
	if m.Fingerprint.CodeVersion == "" {
		return core.NewArgumentError("run_manifest", "code_version cannot be empty")
	}
	if m.Tests <= 0 {
		return core.NewArgumentError("run_manifest", "a run needs at least one test")
	}
	return nil
}

// Replays reports whether other evaluated the same inputs and must therefore
// have produced the same verdicts
func (m *Manifest) Replays(other *Manifest) bool {
	if m == nil || other == nil {
		return false
	}
	return !m.Fingerprint.Fingerprint.IsEmpty() && m.Fingerprint.Fingerprint == other.Fingerprint.Fingerprint
}
