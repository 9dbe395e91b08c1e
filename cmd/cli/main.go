package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"anovakit/adapters/excel"
	"anovakit/domain/core"
	"anovakit/domain/dataset"
	"anovakit/internal"
	"anovakit/internal/config"
	"anovakit/internal/errors"
	"anovakit/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

// cliApp carries the resolved configuration shared by every command
type cliApp struct {
	cfg    *config.Config
	logger *internal.Logger

	file       string
	sheet      string
	format     string
	out        string
	confidence float64
}

func newRootCmd() *cobra.Command {
	app := &cliApp{logger: internal.DefaultLogger}

	rootCmd := &cobra.Command{
		Use:   "anovakit",
		Short: "Classical hypothesis tests and pre-ANOVA exploration for tabular data",
		Long: `anovakit runs one-proportion z-tests, chi-square variance tests, z-tests for
means and F-tests for equal variances on CSV/XLSX columns or inline values,
and computes the exploratory views used before an ANOVA.

Configuration is read from the environment (and a .env file when present):
ANOVAKIT_CONFIDENCE, ANOVAKIT_DATA_FILE, ANOVAKIT_SHEET, ANOVAKIT_WORKERS,
ANOVAKIT_RUN_TIMEOUT, ANOVAKIT_BINS, ANOVAKIT_DOT_SCALE, ANOVAKIT_REPORT_FORMAT
and LOG_LEVEL. Flags override the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.file, "file", "", "CSV or XLSX data file (default $ANOVAKIT_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&app.sheet, "sheet", "", "XLSX sheet name (default $ANOVAKIT_SHEET)")
	rootCmd.PersistentFlags().Float64Var(&app.confidence, "confidence", 0, "confidence level in (0,1) (default $ANOVAKIT_CONFIDENCE)")
	rootCmd.PersistentFlags().StringVar(&app.format, "format", "", "report format: markdown|html (default $ANOVAKIT_REPORT_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&app.out, "out", "", "write the report to this file instead of stdout")

	rootCmd.AddCommand(
		newProportionCmd(app),
		newChiSquareCmd(app),
		newMeansCmd(app),
		newFTestCmd(app),
		newExploreCmd(app),
		newBatteryCmd(app),
	)
	return rootCmd
}

// init loads .env and the environment configuration, then applies flag overrides
func (a *cliApp) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		a.logger.Debug("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if level, ok := internal.ParseLogLevel(cfg.LogLevel); ok {
		a.logger.SetLevel(level)
	}

	flags := cmd.Flags()
	if !flags.Changed("file") {
		a.file = cfg.Data.File
	}
	if !flags.Changed("sheet") {
		a.sheet = cfg.Data.Sheet
	}
	if !flags.Changed("format") {
		a.format = cfg.Report.Format
	}
	if !flags.Changed("confidence") {
		a.confidence = cfg.Analysis.Confidence
	}
	if !(a.confidence > 0 && a.confidence < 1) {
		return errors.InvalidInput(fmt.Sprintf("--confidence must be in (0, 1), got %v", a.confidence))
	}
	return nil
}

// loadTable reads the configured data file
func (a *cliApp) loadTable() (*dataset.Table, error) {
	if a.file == "" {
		return nil, errors.InvalidInput("no data file: pass --file or set ANOVAKIT_DATA_FILE")
	}
	cfg := excel.DefaultReaderConfig()
	cfg.FilePath = a.file
	cfg.Sheet = a.sheet
	table, err := excel.NewDataReaderWithConfig(cfg).WithLogger(a.logger).ReadTable()
	if err != nil {
		return nil, errors.FromDomain(err, "load "+a.file)
	}
	return table, nil
}

// sample resolves a sample from inline values or a named column of the data file.
// Exactly one of column and values must be given.
func (a *cliApp) sample(column, values, what string) ([]float64, error) {
	switch {
	case column != "" && values != "":
		return nil, errors.InvalidInput(fmt.Sprintf("%s: give a column or inline values, not both", what))
	case values != "":
		return parseValues(values)
	case column != "":
		table, err := a.loadTable()
		if err != nil {
			return nil, err
		}
		col, err := table.Column(core.ColumnKey(column))
		if err != nil {
			return nil, errors.FromDomain(err, what)
		}
		return col, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("%s: a column or inline values are required", what))
	}
}

// emit writes a markdown document in the configured format to --out or stdout
func (a *cliApp) emit(cmd *cobra.Command, md string) error {
	body, err := report.Render(md, a.format)
	if err != nil {
		return err
	}
	if a.out == "" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(a.out, body, 0o644); err != nil {
		return errors.Wrapf(err, "write report %s", a.out)
	}
	a.logger.Info("Report written to %s", a.out)
	return nil
}

// parseValues parses a comma separated list; empty, NA and NaN entries become missing
func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch strings.ToLower(p) {
		case "", "na", "nan":
			out = append(out, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("value %q is not a number", p))
		}
		out = append(out, v)
	}
	return out, nil
}
