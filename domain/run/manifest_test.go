package run

import (
	"testing"

	"anovakit/domain/core"
)

func TestRunFingerprint_Deterministic(t *testing.T) {
	planHash := core.Hash("test-plan")
	tableHash := core.Hash("test-table")

	fp1 := NewRunFingerprint(planHash, tableHash, 0.95, "1.0.0")
	fp2 := NewRunFingerprint(planHash, tableHash, 0.95, "1.0.0")

	if fp1.Fingerprint != fp2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Fingerprint, fp2.Fingerprint)
	}
	if fp1.PlanHash != planHash {
		t.Errorf("PlanHash mismatch: %s vs %s", fp1.PlanHash, planHash)
	}
	if fp1.TableHash != tableHash {
		t.Errorf("TableHash mismatch: %s vs %s", fp1.TableHash, tableHash)
	}
	if fp1.Confidence != 0.95 {
		t.Errorf("Confidence mismatch: %v", fp1.Confidence)
	}
}

func TestRunFingerprint_Unique(t *testing.T) {
	base := NewRunFingerprint("test-plan", "test-table", 0.95, "1.0.0")

	testCases := []struct {
		name string
		fp   RunFingerprint
	}{
		{"different plan", NewRunFingerprint("other-plan", "test-table", 0.95, "1.0.0")},
		{"different table", NewRunFingerprint("test-plan", "other-table", 0.95, "1.0.0")},
		{"no table", NewRunFingerprint("test-plan", "", 0.95, "1.0.0")},
		{"different confidence", NewRunFingerprint("test-plan", "test-table", 0.99, "1.0.0")},
		{"different code", NewRunFingerprint("test-plan", "test-table", 0.95, "1.1.0")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp.Fingerprint == base.Fingerprint {
				t.Errorf("Fingerprint should be different for %s", tc.name)
			}
		})
	}
}

func TestManifest_Complete(t *testing.T) {
	runID := core.NewRunID()
	manifest := NewManifest(runID, "fertilizer", "yields", 4, 2, "plan", "table", 0.95)

	if manifest.RunID != runID {
		t.Errorf("RunID not set correctly")
	}
	if manifest.Tests != 4 || manifest.Workers != 2 {
		t.Errorf("Tests/Workers not set correctly: %d/%d", manifest.Tests, manifest.Workers)
	}
	if manifest.Fingerprint.CodeVersion != CodeVersion {
		t.Errorf("CodeVersion not stamped: %q", manifest.Fingerprint.CodeVersion)
	}
	if manifest.Fingerprint.Fingerprint.IsEmpty() {
		t.Errorf("Fingerprint not computed")
	}
	if manifest.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}
	if err := manifest.Validate(); err != nil {
		t.Errorf("Manifest validation failed: %v", err)
	}
}

func TestManifest_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m *Manifest)
	}{
		{"empty run id", func(m *Manifest) { m.RunID = "" }},
		{"empty plan hash", func(m *Manifest) { m.Fingerprint.PlanHash = "" }},
		{"empty code version", func(m *Manifest) { m.Fingerprint.CodeVersion = "" }},
		{"no tests", func(m *Manifest) { m.Tests = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManifest(core.NewRunID(), "p", "t", 1, 1, "plan", "table", 0.95)
			tc.mutate(m)
			err := m.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !core.IsInvalidArgument(err) {
				t.Errorf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestManifest_Replays(t *testing.T) {
	a := NewManifest(core.NewRunID(), "p", "t", 2, 4, "plan", "table", 0.95)
	b := NewManifest(core.NewRunID(), "p", "t", 2, 1, "plan", "table", 0.95)
	c := NewManifest(core.NewRunID(), "p", "t", 2, 4, "plan", "changed", 0.95)

	if !a.Replays(b) {
		t.Errorf("runs over the same inputs should replay regardless of workers")
	}
	if a.Replays(c) {
		t.Errorf("runs over different tables should not replay")
	}
	if a.Replays(nil) {
		t.Errorf("nil manifest should never replay")
	}
}
