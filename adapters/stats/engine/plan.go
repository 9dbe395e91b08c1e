package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	"anovakit/domain/core"

	"gopkg.in/yaml.v3"
)

// Kind names one of the hypothesis tests a plan can request
type Kind string

const (
	KindProportion Kind = "proportion"
	KindChiSquare  Kind = "chisq"
	KindMeans      Kind = "zmeans"
	KindF          Kind = "ftest"
)

// Plan is a named battery of test requests sharing a data table
type Plan struct {
	Name       string        `yaml:"name"`
	Confidence float64       `yaml:"confidence,omitempty"` // default for requests that omit it
	Requests   []TestRequest `yaml:"tests"`
}

// TestRequest describes one test: which columns feed it, its tail keyword
// (in the keyword family of its kind) and kind-specific parameters.
type TestRequest struct {
	Name       string   `yaml:"name"`
	Kind       Kind     `yaml:"kind"`
	Columns    []string `yaml:"columns,omitempty"`
	Confidence float64  `yaml:"confidence,omitempty"`
	Tail       string   `yaml:"tail"`
	Params     Params   `yaml:"params,omitempty"`
}

// Params carries the optional per-kind settings.
// Pointer fields distinguish "not given" from zero.
type Params struct {
	// proportion
	P0         float64 `yaml:"p0,omitempty"`
	NullPolicy string  `yaml:"null_policy,omitempty"`

	// chisq
	Sigma0 float64  `yaml:"sigma0,omitempty"`
	StdDev *float64 `yaml:"std_dev,omitempty"`
	DDOF   *int     `yaml:"ddof,omitempty"`

	// zmeans
	Value     float64  `yaml:"value,omitempty"`
	UseVar    string   `yaml:"usevar,omitempty"`
	MeansDDOF *float64 `yaml:"means_ddof,omitempty"`

	// ftest
	Var1 *float64 `yaml:"var1,omitempty"`
	Var2 *float64 `yaml:"var2,omitempty"`
	N1   int      `yaml:"n1,omitempty"`
	N2   int      `yaml:"n2,omitempty"`
}

// ParsePlan decodes and validates a YAML plan
func ParsePlan(r io.Reader) (*Plan, error) {
	var plan Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if err == io.EOF {
			return nil, core.NewArgumentError("plan", "empty document")
		}
		return nil, fmt.Errorf("%w: decode plan: %v", core.ErrInvalidArgument, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// LoadPlan reads a YAML plan from disk
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: plan %s", core.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()
	return ParsePlan(f)
}

// Validate checks the structure of the plan; numeric checks are left to the tests
func (p *Plan) Validate() error {
	if len(p.Requests) == 0 {
		return core.NewArgumentError("tests", "plan has no tests")
	}
	seen := make(map[string]bool, len(p.Requests))
	for i, req := range p.Requests {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return core.NewArgumentError("tests", fmt.Sprintf("test #%d has no name", i+1))
		}
		if seen[name] {
			return core.NewArgumentError("tests", fmt.Sprintf("duplicate test name %q", name))
		}
		seen[name] = true
		if !req.Kind.Valid() {
			return core.NewArgumentError("kind", fmt.Sprintf("test %q has unknown kind %q", name, req.Kind))
		}
	}
	return nil
}

// Hash fingerprints the plan by its canonical YAML encoding
func (p *Plan) Hash() (core.Hash, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("hash plan %q: %w", p.Name, err)
	}
	return core.NewHash(data), nil
}

// Valid reports whether k is a known test kind
func (k Kind) Valid() bool {
	switch k {
	case KindProportion, KindChiSquare, KindMeans, KindF:
		return true
	}
	return false
}

// confidenceFor resolves the request confidence against the plan and engine defaults
func (p *Plan) confidenceFor(req TestRequest, fallback float64) float64 {
	switch {
	case req.Confidence != 0:
		return req.Confidence
	case p.Confidence != 0:
		return p.Confidence
	default:
		return fallback
	}
}
