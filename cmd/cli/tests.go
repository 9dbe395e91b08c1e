package main

import (
	"fmt"
	"strings"

	"anovakit/adapters/stats/hypothesis"
	"anovakit/domain/stats"
	"anovakit/internal/errors"
	"anovakit/internal/report"

	"github.com/spf13/cobra"
)

func newProportionCmd(app *cliApp) *cobra.Command {
	var column, values, alternative, nullPolicy string
	var p0 float64

	cmd := &cobra.Command{
		Use:   "proportion",
		Short: "One-proportion z-test of sample proportions against a population proportion",
		Long: `Compare the mean of a sample of proportions with a population proportion p0.

Missing entries are dropped, or filled with the mean or median of the present
entries (--null-policy mean|median).

Example: anovakit proportion --values 0.48,0.52,0.5,0.49 --p0 0.5 --alternative two-sided`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tail, err := stats.ParseAlternative(alternative)
			if err != nil {
				return errors.FromDomain(err, "proportion")
			}
			sample, err := app.sample(column, values, "proportion")
			if err != nil {
				return err
			}
			result, err := hypothesis.OneProportionZTest(sample, p0, tail, stats.ParseNullPolicy(nullPolicy))
			if err != nil {
				return errors.FromDomain(err, "proportion")
			}
			decision, err := hypothesis.DecideZ(result, app.confidence, tail)
			if err != nil {
				return errors.FromDomain(err, "proportion")
			}
			return app.emit(cmd, testMarkdown("One-proportion z-test", []string{"z", "p-value"}, result.Values(), decision, app.confidence))
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "column of sample proportions in --file")
	cmd.Flags().StringVar(&values, "values", "", "comma separated sample proportions")
	cmd.Flags().Float64Var(&p0, "p0", 0.5, "population proportion")
	cmd.Flags().StringVar(&alternative, "alternative", "two-sided", "smaller|larger|two-sided")
	cmd.Flags().StringVar(&nullPolicy, "null-policy", "drop", "missing values: drop|mean|median")
	return cmd
}

func newChiSquareCmd(app *cliApp) *cobra.Command {
	var column, values, tailCode string
	var sigma0, stdDev float64
	var ddof int

	cmd := &cobra.Command{
		Use:   "chisq",
		Short: "Chi-square test of one population variance",
		Long: `Compare a sample variance with a hypothesized population standard deviation.

The sample spread comes from data (--column or --values; dof n-1 unless --ddof
is given) or from a known sample standard deviation (--std-dev with --ddof).

Example: anovakit chisq --std-dev 1.2 --ddof 10 --sigma0 1 --tail r`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tail, err := stats.ParseTailCode(tailCode)
			if err != nil {
				return errors.FromDomain(err, "chisq")
			}

			var source stats.VarianceSource
			switch {
			case cmd.Flags().Changed("std-dev"):
				if column != "" || values != "" {
					return errors.InvalidInput("chisq: --std-dev cannot be combined with sample data")
				}
				if !cmd.Flags().Changed("ddof") {
					return errors.InvalidInput("chisq: --std-dev requires --ddof")
				}
				source = stats.ByStats{StdDev: stdDev, DDOF: ddof}
			default:
				data, err := app.sample(column, values, "chisq")
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("ddof") {
					source = stats.ByDataWithDDOF{Data: data, DDOF: ddof}
				} else {
					source = stats.ByData{Data: data}
				}
			}

			result, err := hypothesis.ChiSquareVarianceTest(sigma0, app.confidence, tail, source)
			if err != nil {
				return errors.FromDomain(err, "chisq")
			}
			decision, err := hypothesis.DecideChiSquare(result, app.confidence, tail)
			if err != nil {
				return errors.FromDomain(err, "chisq")
			}
			labels := []string{"chi-square", "critical", "p-value"}
			if tail == stats.TailBoth {
				labels = []string{"chi-square", "left critical", "right critical", "p-value"}
			}
			return app.emit(cmd, testMarkdown(fmt.Sprintf("Chi-square variance test (dof %d)", result.DOF), labels, result.Values(), decision, app.confidence))
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "sample column in --file")
	cmd.Flags().StringVar(&values, "values", "", "comma separated sample values")
	cmd.Flags().Float64Var(&sigma0, "sigma0", 0, "hypothesized population standard deviation")
	cmd.Flags().Float64Var(&stdDev, "std-dev", 0, "known sample standard deviation")
	cmd.Flags().IntVar(&ddof, "ddof", 0, "degrees of freedom")
	cmd.Flags().StringVar(&tailCode, "tail", "lr", "l|r|lr")
	_ = cmd.MarkFlagRequired("sigma0")
	return cmd
}

func newMeansCmd(app *cliApp) *cobra.Command {
	var x1, x2, x1Values, x2Values, alternative, useVar string
	var value, ddof float64

	cmd := &cobra.Command{
		Use:   "zmeans",
		Short: "Z-test for one mean or the difference of two means (unpooled variances)",
		Long: `Test a single mean (only x1) or the difference of two independent means.

Alternatives: two-sided|2-sided|2s, larger|l, smaller|s.

Example: anovakit zmeans --file yields.csv --x1 fertilizer_a --x2 fertilizer_b --alternative larger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tail, err := stats.ParseMeansAlternative(alternative)
			if err != nil {
				return errors.FromDomain(err, "zmeans")
			}
			s1, err := app.sample(x1, x1Values, "zmeans x1")
			if err != nil {
				return err
			}
			var s2 []float64
			if x2 != "" || x2Values != "" {
				if s2, err = app.sample(x2, x2Values, "zmeans x2"); err != nil {
					return err
				}
			}

			cfg := hypothesis.MeansZTestConfig{Value: value, Tail: tail, UseVar: useVar, DDOF: ddof}
			result, err := hypothesis.MeansZTest(s1, s2, cfg)
			if err != nil {
				return errors.FromDomain(err, "zmeans")
			}
			decision, err := hypothesis.DecideZ(result, app.confidence, tail)
			if err != nil {
				return errors.FromDomain(err, "zmeans")
			}
			return app.emit(cmd, testMarkdown("Z-test for means", []string{"z", "p-value"}, result.Values(), decision, app.confidence))
		},
	}

	cmd.Flags().StringVar(&x1, "x1", "", "first sample column in --file")
	cmd.Flags().StringVar(&x2, "x2", "", "second sample column in --file (omit for one sample)")
	cmd.Flags().StringVar(&x1Values, "x1-values", "", "comma separated first sample")
	cmd.Flags().StringVar(&x2Values, "x2-values", "", "comma separated second sample")
	cmd.Flags().Float64Var(&value, "value", 0, "hypothesized mean (one sample) or mean difference")
	cmd.Flags().StringVar(&alternative, "alternative", "two-sided", "two-sided|larger|smaller")
	cmd.Flags().StringVar(&useVar, "usevar", hypothesis.UseVarNotPooled, "variance mode (only notpooled)")
	cmd.Flags().Float64Var(&ddof, "ddof", 1, "one-sample variance-of-mean adjustment")
	return cmd
}

func newFTestCmd(app *cliApp) *cobra.Command {
	var x1, x2, x1Values, x2Values, alternative string
	var var1, var2 float64
	var n1, n2 int

	cmd := &cobra.Command{
		Use:   "ftest",
		Short: "F-test for the equality of two variances",
		Long: `Compare two variances, given directly (--var1 --var2 --n1 --n2) or computed
from two samples.

Example: anovakit ftest --var1 25 --var2 16 --n1 16 --n2 21 --alternative two-sided`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tail, err := stats.ParseAlternative(alternative)
			if err != nil {
				return errors.FromDomain(err, "ftest")
			}

			var pair stats.VariancePair
			given := cmd.Flags().Changed("var1") || cmd.Flags().Changed("var2")
			if given {
				if x1 != "" || x2 != "" || x1Values != "" || x2Values != "" {
					return errors.InvalidInput("ftest: variances cannot be combined with sample data")
				}
				pair = stats.FromVariances{Var1: var1, Var2: var2, N1: n1, N2: n2}
			} else {
				s1, err := app.sample(x1, x1Values, "ftest x1")
				if err != nil {
					return err
				}
				s2, err := app.sample(x2, x2Values, "ftest x2")
				if err != nil {
					return err
				}
				pair = stats.FromSamples{X1: s1, X2: s2}
			}

			result, err := hypothesis.FTest(pair, app.confidence, tail)
			if err != nil {
				return errors.FromDomain(err, "ftest")
			}
			decision, err := hypothesis.DecideF(result, app.confidence)
			if err != nil {
				return errors.FromDomain(err, "ftest")
			}
			labels := []string{"F", "p-value", "critical"}
			if tail == stats.TailBoth {
				labels = []string{"F", "p-value", "left critical", "right critical"}
			}
			title := fmt.Sprintf("F-test for equal variances (dof %d, %d)", result.DOF1, result.DOF2)
			return app.emit(cmd, testMarkdown(title, labels, result.Values(), decision, app.confidence))
		},
	}

	cmd.Flags().StringVar(&x1, "x1", "", "first sample column in --file")
	cmd.Flags().StringVar(&x2, "x2", "", "second sample column in --file")
	cmd.Flags().StringVar(&x1Values, "x1-values", "", "comma separated first sample")
	cmd.Flags().StringVar(&x2Values, "x2-values", "", "comma separated second sample")
	cmd.Flags().Float64Var(&var1, "var1", 0, "first variance")
	cmd.Flags().Float64Var(&var2, "var2", 0, "second variance")
	cmd.Flags().IntVar(&n1, "n1", 0, "first sample size")
	cmd.Flags().IntVar(&n2, "n2", 0, "second sample size")
	cmd.Flags().StringVar(&alternative, "alternative", "two-sided", "smaller|larger|two-sided")
	return cmd
}

// testMarkdown renders one test's labelled values and decision
func testMarkdown(title string, labels []string, values []float64, decision stats.Decision, confidence float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n| Quantity | Value |\n|---|---|\n", title)
	for i, v := range values {
		label := fmt.Sprintf("v%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Fprintf(&b, "| %s | %.6g |\n", label, v)
	}
	fmt.Fprintf(&b, "\n%s\n", report.DecisionMessage(decision, confidence))
	return b.String()
}
