package engine

import (
	"fmt"

	"anovakit/adapters/stats/hypothesis"
	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats"
)

// Verdict is what a runner hands back: the test's contract tuple plus the decision
type Verdict struct {
	Values    []float64      `json:"values"`
	Statistic float64        `json:"statistic"`
	PValue    float64        `json:"p_value"`
	Decision  stats.Decision `json:"decision"`
}

// Runner executes one kind of test against a table
type Runner interface {
	Kind() Kind
	Run(req TestRequest, table *dataset.Table, confidence float64) (Verdict, error)
}

// DefaultRunners returns one runner per test kind
func DefaultRunners() []Runner {
	return []Runner{
		proportionRunner{},
		chiSquareRunner{},
		meansRunner{},
		fRunner{},
	}
}

// ============================================================================
// ONE-PROPORTION Z-TEST
// ============================================================================

type proportionRunner struct{}

func (proportionRunner) Kind() Kind { return KindProportion }

func (proportionRunner) Run(req TestRequest, table *dataset.Table, confidence float64) (Verdict, error) {
	tail, err := stats.ParseAlternative(req.Tail)
	if err != nil {
		return Verdict{}, err
	}
	cols, err := columns(table, req, 1, 1)
	if err != nil {
		return Verdict{}, err
	}

	result, err := hypothesis.OneProportionZTest(cols[0], req.Params.P0, tail, stats.ParseNullPolicy(req.Params.NullPolicy))
	if err != nil {
		return Verdict{}, err
	}
	decision, err := hypothesis.DecideZ(result, confidence, tail)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Values: result.Values(), Statistic: result.Statistic, PValue: result.PValue, Decision: decision}, nil
}

// ============================================================================
// CHI-SQUARE VARIANCE TEST
// ============================================================================

type chiSquareRunner struct{}

func (chiSquareRunner) Kind() Kind { return KindChiSquare }

func (chiSquareRunner) Run(req TestRequest, table *dataset.Table, confidence float64) (Verdict, error) {
	tail, err := stats.ParseTailCode(req.Tail)
	if err != nil {
		return Verdict{}, err
	}

	var source stats.VarianceSource
	p := req.Params
	switch {
	case p.StdDev != nil && len(req.Columns) > 0:
		return Verdict{}, fmt.Errorf("%w: test %q gives both std_dev and columns", core.ErrAmbiguousInput, req.Name)
	case p.StdDev != nil:
		if p.DDOF == nil {
			return Verdict{}, core.NewArgumentError("ddof", "required with std_dev")
		}
		source = stats.ByStats{StdDev: *p.StdDev, DDOF: *p.DDOF}
	default:
		cols, err := columns(table, req, 1, 1)
		if err != nil {
			return Verdict{}, err
		}
		if p.DDOF != nil {
			source = stats.ByDataWithDDOF{Data: cols[0], DDOF: *p.DDOF}
		} else {
			source = stats.ByData{Data: cols[0]}
		}
	}

	result, err := hypothesis.ChiSquareVarianceTest(p.Sigma0, confidence, tail, source)
	if err != nil {
		return Verdict{}, err
	}
	decision, err := hypothesis.DecideChiSquare(result, confidence, tail)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Values: result.Values(), Statistic: result.Statistic, PValue: result.PValue, Decision: decision}, nil
}

// ============================================================================
// Z-TEST FOR MEANS
// ============================================================================

type meansRunner struct{}

func (meansRunner) Kind() Kind { return KindMeans }

func (meansRunner) Run(req TestRequest, table *dataset.Table, confidence float64) (Verdict, error) {
	tail, err := stats.ParseMeansAlternative(req.Tail)
	if err != nil {
		return Verdict{}, err
	}
	cols, err := columns(table, req, 1, 2)
	if err != nil {
		return Verdict{}, err
	}

	cfg := hypothesis.DefaultMeansZTestConfig()
	cfg.Tail = tail
	cfg.Value = req.Params.Value
	if req.Params.UseVar != "" {
		cfg.UseVar = req.Params.UseVar
	}
	if req.Params.MeansDDOF != nil {
		cfg.DDOF = *req.Params.MeansDDOF
	}

	var x2 []float64
	if len(cols) == 2 {
		x2 = cols[1]
	}
	result, err := hypothesis.MeansZTest(cols[0], x2, cfg)
	if err != nil {
		return Verdict{}, err
	}
	decision, err := hypothesis.DecideZ(result, confidence, tail)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Values: result.Values(), Statistic: result.Statistic, PValue: result.PValue, Decision: decision}, nil
}

// ============================================================================
// F-TEST FOR EQUAL VARIANCES
// ============================================================================

type fRunner struct{}

func (fRunner) Kind() Kind { return KindF }

func (fRunner) Run(req TestRequest, table *dataset.Table, confidence float64) (Verdict, error) {
	tail, err := stats.ParseAlternative(req.Tail)
	if err != nil {
		return Verdict{}, err
	}

	var pair stats.VariancePair
	p := req.Params
	given := p.Var1 != nil || p.Var2 != nil
	switch {
	case given && len(req.Columns) > 0:
		return Verdict{}, fmt.Errorf("%w: test %q gives both variances and columns", core.ErrAmbiguousInput, req.Name)
	case given:
		if p.Var1 == nil || p.Var2 == nil {
			return Verdict{}, core.NewArgumentError("variances", "var1 and var2 must be given together")
		}
		pair = stats.FromVariances{Var1: *p.Var1, Var2: *p.Var2, N1: p.N1, N2: p.N2}
	default:
		cols, err := columns(table, req, 2, 2)
		if err != nil {
			return Verdict{}, err
		}
		pair = stats.FromSamples{X1: cols[0], X2: cols[1]}
	}

	result, err := hypothesis.FTest(pair, confidence, tail)
	if err != nil {
		return Verdict{}, err
	}
	decision, err := hypothesis.DecideF(result, confidence)
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Values: result.Values(), Statistic: result.Statistic, PValue: result.PValue, Decision: decision}, nil
}

// columns resolves the request's columns, requiring between least and most of them
func columns(table *dataset.Table, req TestRequest, least, most int) ([][]float64, error) {
	if len(req.Columns) < least || len(req.Columns) > most {
		want := fmt.Sprintf("%d", least)
		if most != least {
			want = fmt.Sprintf("%d or %d", least, most)
		}
		return nil, core.NewArgumentError("columns", fmt.Sprintf("%s test needs %s columns, got %d", req.Kind, want, len(req.Columns)))
	}
	if table == nil {
		return nil, core.NewArgumentError("table", "no data table loaded")
	}
	out := make([][]float64, len(req.Columns))
	for i, name := range req.Columns {
		col, err := table.Column(core.ColumnKey(name))
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}
