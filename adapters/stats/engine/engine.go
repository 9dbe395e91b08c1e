// Package engine runs a battery of hypothesis tests described by a YAML plan
// against one data table, concurrently and with bounded parallelism.
package engine

import (
	"context"
	"fmt"
	"time"

	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/run"
	"anovakit/internal"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConfidence applies when neither the request nor the plan sets one
const DefaultConfidence = 0.95

// Outcome is the result of one plan request. Err is set instead of Verdict
// when the request could not be run.
type Outcome struct {
	Request    TestRequest   `json:"request"`
	Confidence float64       `json:"confidence"`
	Verdict    Verdict       `json:"verdict"`
	Err        error         `json:"-"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Failed reports whether the request errored
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Report is the full result of one battery run, outcomes in plan order
type Report struct {
	RunID       core.RunID     `json:"run_id"`
	Plan        string         `json:"plan"`
	Table       string         `json:"table"`
	Fingerprint core.Hash      `json:"fingerprint"`
	StartedAt   core.Timestamp `json:"started_at"`
	CompletedAt core.Timestamp `json:"completed_at"`
	Outcomes    []Outcome      `json:"outcomes"`
	Manifest    *run.Manifest  `json:"manifest"`
}

// Rejected counts the outcomes that rejected the null hypothesis
func (r *Report) Rejected() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Failed() && o.Verdict.Decision.Rejected() {
			n++
		}
	}
	return n
}

// Failures counts the outcomes that errored
func (r *Report) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Battery dispatches plan requests to the runner registered for their kind
type Battery struct {
	runners    map[Kind]Runner
	workers    int64
	confidence float64
	logger     *internal.Logger
}

// Option configures a Battery
type Option func(*Battery)

// WithWorkers bounds the number of tests running at once
func WithWorkers(n int) Option {
	return func(b *Battery) {
		if n > 0 {
			b.workers = int64(n)
		}
	}
}

// WithConfidence sets the fallback confidence level
func WithConfidence(c float64) Option {
	return func(b *Battery) {
		if c > 0 && c < 1 {
			b.confidence = c
		}
	}
}

// WithLogger replaces the default logger
func WithLogger(l *internal.Logger) Option {
	return func(b *Battery) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRunner registers or overrides the runner for its kind
func WithRunner(r Runner) Option {
	return func(b *Battery) {
		b.runners[r.Kind()] = r
	}
}

// NewBattery creates a battery with the default runners
func NewBattery(opts ...Option) *Battery {
	b := &Battery{
		runners:    make(map[Kind]Runner),
		workers:    4,
		confidence: DefaultConfidence,
		logger:     internal.DefaultLogger,
	}
	for _, r := range DefaultRunners() {
		b.runners[r.Kind()] = r
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Kinds lists the registered test kinds
func (b *Battery) Kinds() []Kind {
	kinds := make([]Kind, 0, len(b.runners))
	for _, k := range []Kind{KindProportion, KindChiSquare, KindMeans, KindF} {
		if _, ok := b.runners[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Run executes every request of the plan. A failing request is recorded in
// its outcome and does not stop the others; cancelling ctx marks the requests
// that never started and returns ctx.Err() alongside the partial report.
func (b *Battery) Run(ctx context.Context, plan *Plan, table *dataset.Table) (*Report, error) {
	if plan == nil {
		return nil, core.NewArgumentError("plan", "nil plan")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	planHash, err := plan.Hash()
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     core.NewRunID(),
		Plan:      plan.Name,
		StartedAt: core.Now(),
		Outcomes:  make([]Outcome, len(plan.Requests)),
	}
	if table != nil {
		report.Table = table.Name
		report.Fingerprint = table.Fingerprint()
	}
	report.Manifest = run.NewManifest(report.RunID, plan.Name, report.Table, len(plan.Requests),
		int(b.workers), planHash, report.Fingerprint, b.confidence)

	b.logger.Info("[Battery] Run %s: plan %q with %d tests (workers=%d)",
		report.RunID, plan.Name, len(plan.Requests), b.workers)

	sem := semaphore.NewWeighted(b.workers)
	g, gctx := errgroup.WithContext(ctx)

	for i, req := range plan.Requests {
		confidence := plan.confidenceFor(req, b.confidence)
		report.Outcomes[i] = Outcome{Request: req, Confidence: confidence}

		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				report.Outcomes[i].Err = err
				report.Outcomes[i].Error = err.Error()
				return nil
			}
			defer sem.Release(1)

			report.Outcomes[i] = b.runOne(req, table, confidence)
			return nil
		})
	}
	// goroutines never return errors; failures live in the outcomes
	_ = g.Wait()

	report.CompletedAt = core.Now()
	b.logger.Info("[Battery] Run %s completed in %v: %d rejected, %d failed",
		report.RunID, report.CompletedAt.Sub(report.StartedAt), report.Rejected(), report.Failures())

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (b *Battery) runOne(req TestRequest, table *dataset.Table, confidence float64) (out Outcome) {
	out = Outcome{Request: req, Confidence: confidence}
	start := time.Now()
	defer func() { out.Duration = time.Since(start) }()

	runner, ok := b.runners[req.Kind]
	if !ok {
		out.Err = core.NewArgumentError("kind", fmt.Sprintf("no runner for %q", req.Kind))
		out.Error = out.Err.Error()
		return out
	}

	verdict, err := runner.Run(req, table, confidence)
	if err != nil {
		b.logger.Warn("[Battery] Test %q (%s) failed: %v", req.Name, req.Kind, err)
		out.Err = fmt.Errorf("test %q: %w", req.Name, err)
		out.Error = out.Err.Error()
		return out
	}

	b.logger.Debug("[Battery] Test %q (%s): stat=%.4f p=%.4g %s",
		req.Name, req.Kind, verdict.Statistic, verdict.PValue, verdict.Decision)
	out.Verdict = verdict
	return out
}
