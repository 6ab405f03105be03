package output

import (
	"fmt"
	"io"

	"github.com/substrate-tools/weightlens/internal/weights"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, a *weights.Analysis) error {
	fmt.Fprintf(w, "## Weight Diff Analysis\n\n")
	fmt.Fprintf(w, "Threshold: %.0f%% | Functions changed: %d\n\n", a.Threshold, a.Total)

	if s := a.Overall; s != nil {
		fmt.Fprintf(w, "| Min exec time | Value |\n")
		fmt.Fprintf(w, "|---------------|-------|\n")
		fmt.Fprintf(w, "| Increases | %d |\n", s.Increases)
		fmt.Fprintf(w, "| Decreases | %d |\n", s.Decreases)
		fmt.Fprintf(w, "| Average | %+.1f%% |\n", s.Mean)
		fmt.Fprintf(w, "| Median | %+.1f%% |\n", s.Median)
		fmt.Fprintf(w, "| Range | %+.1f%% to %+.1f%% |\n\n", s.Min, s.Max)
	}

	if !a.Significant() {
		fmt.Fprintln(w, "No significant weight changes found. :white_check_mark:")
		if len(a.AllMinExec) > 0 {
			m.writeTable(w, a)
		}
		return nil
	}

	m.writeBase(w, fmt.Sprintf(":chart_with_upwards_trend: Base ref_time increases > %.0f%%", a.Threshold), a.BaseIncreases)
	m.writeBase(w, fmt.Sprintf(":chart_with_downwards_trend: Base ref_time decreases > %.0f%%", a.Threshold), a.BaseDecreases)
	m.writeMultipliers(w, a)
	m.writeMinExec(w, a)
	m.writeProof(w, a)
	m.writeTable(w, a)

	return nil
}

func (m *MarkdownWriter) writeBase(w io.Writer, title string, entries []weights.BaseChange) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "<details>\n<summary>%s (%d)</summary>\n\n", title, len(entries))
	fmt.Fprintf(w, "| Function | Old | New | Change |\n")
	fmt.Fprintf(w, "|----------|----:|----:|-------:|\n")
	for _, e := range entries {
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
			e.Change.Label(), commas(e.Old), commas(e.New), pctString(e.Percent))
	}
	fmt.Fprintf(w, "\n</details>\n\n")
}

func (m *MarkdownWriter) writeMultipliers(w io.Writer, a *weights.Analysis) {
	if len(a.MultiplierGroups) == 0 {
		return
	}
	fmt.Fprintf(w, "<details>\n<summary>:abacus: Per-variable ref_time multiplier changes > %.0f%% (%d)</summary>\n\n",
		a.Threshold, len(a.MultiplierGroups))
	fmt.Fprintf(w, "| Function | Variable | Old | New | Change |\n")
	fmt.Fprintf(w, "|----------|----------|----:|----:|-------:|\n")
	for _, g := range a.MultiplierGroups {
		for _, mc := range g.Multipliers {
			fmt.Fprintf(w, "| `%s` | %s | %s | %s | %s |\n",
				g.Change.Label(), mc.Variable, scaledWeight(mc.Old), scaledWeight(mc.New), mulPctString(mc.Percent))
		}
		for _, r := range g.ReadDeltas {
			fmt.Fprintf(w, "| `%s` | %s (DB reads) | %d | %d | |\n",
				g.Change.Label(), r.Variable, r.Old, r.New)
		}
	}
	fmt.Fprintf(w, "\n</details>\n\n")
}

func (m *MarkdownWriter) writeMinExec(w io.Writer, a *weights.Analysis) {
	if len(a.MinExecChanges) == 0 {
		return
	}
	fmt.Fprintf(w, "<details>\n<summary>:stopwatch: Minimum execution time changes > %.0f%% (%d)</summary>\n\n",
		a.Threshold, len(a.MinExecChanges))
	fmt.Fprintf(w, "| Function | Old | New | Change |\n")
	fmt.Fprintf(w, "|----------|----:|----:|-------:|\n")
	for _, e := range a.MinExecChanges {
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
			e.Change.Label(), scaledWeight(e.Old), scaledWeight(e.New), pctString(e.Percent))
	}
	fmt.Fprintf(w, "\n</details>\n\n")
}

func (m *MarkdownWriter) writeProof(w io.Writer, a *weights.Analysis) {
	if len(a.ProofChanges) == 0 {
		return
	}
	fmt.Fprintf(w, "<details>\n<summary>:package: proof_size per-variable changes > %.0f%% (%d)</summary>\n\n",
		weights.ProofThreshold, len(a.ProofChanges))
	fmt.Fprintf(w, "| Function | Variable | Old | New | Change |\n")
	fmt.Fprintf(w, "|----------|----------|----:|----:|-------:|\n")
	for _, e := range a.ProofChanges {
		fmt.Fprintf(w, "| `%s` | %s | %s | %s | %s |\n",
			e.Change.Label(), e.Variable, scaledWeight(e.Old), scaledWeight(e.New), pctString(e.Percent))
	}
	fmt.Fprintf(w, "\n</details>\n\n")
}

func (m *MarkdownWriter) writeTable(w io.Writer, a *weights.Analysis) {
	if len(a.AllMinExec) == 0 {
		return
	}
	fmt.Fprintf(w, "<details>\n<summary>All minimum execution time changes (%d)</summary>\n\n", len(a.AllMinExec))
	fmt.Fprintf(w, "| Runtime | Pallet | Function | Old | New | Change |\n")
	fmt.Fprintf(w, "|---------|--------|----------|----:|----:|-------:|\n")
	for _, e := range a.AllMinExec {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			e.Change.Runtime, e.Change.Pallet, e.Change.Function,
			scaledWeight(e.Old), scaledWeight(e.New), pctString(e.Percent))
	}
	fmt.Fprintf(w, "\n</details>\n")
}
