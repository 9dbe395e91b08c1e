package main

import (
	"context"

	"anovakit/adapters/stats/engine"
	"anovakit/adapters/stats/explore"
	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/domain/stats/brief"
	"anovakit/internal/errors"
	"anovakit/internal/report"

	"github.com/spf13/cobra"
)

func newExploreCmd(app *cliApp) *cobra.Command {
	var columns []string
	var bins int
	var dotScale float64
	var marginal, rows bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Profile columns with the plot data used before an ANOVA",
		Long: `Compute summary statistics, histogram with density curve, dot plot, normal
probability plot and box plot for each column, and optionally the marginal
means of the treatment columns.

Example: anovakit explore --file yields.xlsx --columns fertilizer_a,fertilizer_b --marginal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.loadTable()
			if err != nil {
				return err
			}
			keys := columnKeys(table, columns)

			opts := explore.ProfileOptions{Bins: app.cfg.Explore.Bins, DotScale: app.cfg.Explore.DotScale}
			if cmd.Flags().Changed("bins") {
				opts.Bins = bins
			}
			if cmd.Flags().Changed("dot-scale") {
				opts.DotScale = dotScale
			}

			briefs, err := explore.Profile(table, keys, opts)
			if err != nil {
				return errors.FromDomain(err, "explore")
			}

			var means *brief.MarginalMeans
			if marginal || rows {
				m, err := explore.MarginalMeans(table, keys, rows)
				if err != nil {
					return errors.FromDomain(err, "marginal means")
				}
				means = &m
			}
			return app.emit(cmd, report.ProfileMarkdown(table.Name, briefs, means))
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to profile (default all)")
	cmd.Flags().IntVar(&bins, "bins", explore.DefaultBins, "histogram bins (default $ANOVAKIT_BINS)")
	cmd.Flags().Float64Var(&dotScale, "dot-scale", explore.DefaultDotScale, "dot plot step (default $ANOVAKIT_DOT_SCALE)")
	cmd.Flags().BoolVar(&marginal, "marginal", false, "include the marginal means of the columns")
	cmd.Flags().BoolVar(&rows, "rows", false, "include per-row (block) means; implies --marginal")
	return cmd
}

func newBatteryCmd(app *cliApp) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "battery <plan.yaml>",
		Short: "Run a YAML plan of hypothesis tests concurrently",
		Long: `Run every test of a YAML plan against the data file and print one report.
A failing test is reported in its row and does not stop the others.

Example plan:

  name: fertilizer
  confidence: 0.95
  tests:
    - name: spread
      kind: chisq
      columns: [fertilizer_a]
      tail: r
      params: {sigma0: 1}
    - name: a_vs_b
      kind: zmeans
      columns: [fertilizer_a, fertilizer_b]
      tail: two-sided

Example: anovakit battery plan.yaml --file yields.csv --format html --out report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := engine.LoadPlan(args[0])
			if err != nil {
				return errors.FromDomain(err, "plan")
			}

			var table *dataset.Table
			if app.file != "" {
				if table, err = app.loadTable(); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("workers") {
				workers = app.cfg.Analysis.Workers
			}
			battery := engine.NewBattery(
				engine.WithWorkers(workers),
				engine.WithConfidence(app.confidence),
				engine.WithLogger(app.logger),
			)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout := app.cfg.Analysis.RunTimeout; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			result, runErr := battery.Run(ctx, plan, table)
			if result == nil {
				return errors.FromDomain(runErr, "battery")
			}
			if err := app.emit(cmd, report.BatteryMarkdown(result)); err != nil {
				return err
			}
			if runErr != nil {
				return errors.Wrap(runErr, "battery interrupted")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "tests running at once (default $ANOVAKIT_WORKERS)")
	return cmd
}

// columnKeys returns the named columns, or every table column when none are named
func columnKeys(table *dataset.Table, names []string) []core.ColumnKey {
	if len(names) == 0 {
		return table.Columns()
	}
	keys := make([]core.ColumnKey, len(names))
	for i, n := range names {
		keys[i] = core.ColumnKey(n)
	}
	return keys
}
