package report

import (
	"fmt"
	"strings"

	"anovakit/adapters/stats/engine"
	"anovakit/domain/stats/brief"
)

// BatteryMarkdown renders a battery run as a summary table followed by one
// conclusion per test, in plan order.
func BatteryMarkdown(r *engine.Report) string {
	var b strings.Builder

	title := r.Plan
	if title == "" {
		title = "battery"
	}
	fmt.Fprintf(&b, "# Battery report: %s\n\n", title)
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	if r.Table != "" {
		fmt.Fprintf(&b, "- Table: %s (fingerprint `%s`)\n", r.Table, r.Fingerprint.Short())
	}
	if r.Manifest != nil {
		fmt.Fprintf(&b, "- Replay fingerprint: `%s` (code %s)\n", r.Manifest.Fingerprint.Fingerprint.Short(), r.Manifest.Fingerprint.CodeVersion)
	}
	fmt.Fprintf(&b, "- Tests: %d (%d rejected, %d failed)\n", len(r.Outcomes), r.Rejected(), r.Failures())
	fmt.Fprintf(&b, "- Duration: %v\n\n", r.CompletedAt.Sub(r.StartedAt))

	b.WriteString("| Test | Kind | Tail | Confidence | Statistic | p-value | Decision |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, o := range r.Outcomes {
		if o.Failed() {
			fmt.Fprintf(&b, "| %s | %s | %s | %v | - | - | error |\n", o.Request.Name, o.Request.Kind, o.Request.Tail, o.Confidence)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %v | %.4f | %.4g | %s |\n",
			o.Request.Name, o.Request.Kind, o.Request.Tail, o.Confidence,
			o.Verdict.Statistic, o.Verdict.PValue, decisionLabel(o.Verdict.Decision.Rejected()))
	}

	b.WriteString("\n## Conclusions\n\n")
	for _, o := range r.Outcomes {
		if o.Failed() {
			fmt.Fprintf(&b, "- **%s**: error: %s\n", o.Request.Name, o.Error)
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", o.Request.Name, DecisionMessage(o.Verdict.Decision, o.Confidence))
	}
	return b.String()
}

// ProfileMarkdown renders per-column summaries and, when given, the marginal means
func ProfileMarkdown(table string, briefs []brief.ColumnBrief, marginal *brief.MarginalMeans) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Exploratory profile: %s\n\n", table)
	b.WriteString("| Column | n | Missing | Mean | Std dev | Min | Q1 | Median | Q3 | Max | Outliers | Shape |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range briefs {
		s := c.Summary
		fmt.Fprintf(&b, "| %s | %d | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %d | %s |\n",
			c.Column, c.SampleSize, c.Missing, s.Mean, s.StdDev, s.Min, c.Box.Q1, s.Median, c.Box.Q3, s.Max,
			len(c.Box.Outliers), c.Shape())
	}

	for _, c := range briefs {
		fmt.Fprintf(&b, "\n## %s\n\n", c.Column)
		b.WriteString("Histogram:\n\n| Bin | Count | Density |\n|---|---|---|\n")
		for i, count := range c.Histogram.Counts {
			fmt.Fprintf(&b, "| [%.4g, %.4g%s | %.0f | %.4g |\n",
				c.Histogram.Edges[i], c.Histogram.Edges[i+1], binClose(i, len(c.Histogram.Counts)), count, c.Histogram.Density[i])
		}
		b.WriteString("\nDot plot:\n\n```\n")
		for _, s := range c.DotPlot.Stacks {
			fmt.Fprintf(&b, "%10.4g | %s\n", s.Value, strings.Repeat("*", s.Count))
		}
		b.WriteString("```\n")
		fmt.Fprintf(&b, "\nQ-Q line: sample = %.4g + %.4g * theoretical\n", c.ProbPlot.QQLine.Intercept, c.ProbPlot.QQLine.Slope)
	}

	if marginal != nil {
		b.WriteString("\n## Marginal means\n\n")
		fmt.Fprintf(&b, "Grand mean: %.4g\n\n| Group | n | Mean |\n|---|---|---|\n", marginal.GrandMean)
		for _, g := range marginal.GroupMeans {
			fmt.Fprintf(&b, "| %s | %d | %.4g |\n", g.Group, g.N, g.Mean)
		}
		if len(marginal.RowMeans) > 0 {
			b.WriteString("\n| Block | n | Mean |\n|---|---|---|\n")
			for _, r := range marginal.RowMeans {
				fmt.Fprintf(&b, "| %d | %d | %.4g |\n", r.Row+1, r.N, r.Mean)
			}
		}
	}
	return b.String()
}

func decisionLabel(rejected bool) string {
	if rejected {
		return "reject H0"
	}
	return "fail to reject H0"
}

func binClose(i, n int) string {
	if i == n-1 {
		return "]"
	}
	return ")"
}
