package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/perf/benchunit"

	"github.com/substrate-tools/weightlens/internal/weights"
)

const sepWidth = 120

// TextWriter outputs the sectioned human-readable report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, a *weights.Analysis) error {
	ew := &errWriter{w: w}
	sep := strings.Repeat("=", sepWidth)

	ew.println(sep)
	ew.printf("WEIGHT DIFF ANALYSIS (threshold: %.0f%%)\n", a.Threshold)
	ew.println(sep)

	ew.printf("\nTotal weight functions with changes: %d\n", a.Total)
	if s := a.Overall; s != nil {
		ew.println("\n  Minimum execution time summary:")
		ew.printf("    Increases: %d, Decreases: %d\n", s.Increases, s.Decreases)
		ew.printf("    Average: %+.1f%%, Median: %+.1f%%\n", s.Mean, s.Median)
		ew.printf("    Range: %+.1f%% to %+.1f%%\n", s.Min, s.Max)
	}

	t.writeBaseSection(ew, sep, fmt.Sprintf("SECTION 1: BASE ref_time INCREASE > %.0f%%", a.Threshold), a.BaseIncreases, true)
	t.writeBaseSection(ew, sep, fmt.Sprintf("SECTION 2: BASE ref_time DECREASE > %.0f%%", a.Threshold), a.BaseDecreases, false)
	t.writeMultiplierSection(ew, sep, a)
	t.writeMinExecSection(ew, sep, a)
	t.writeProofSection(ew, sep, a)
	t.writeRuntimeSection(ew, sep, a)
	t.writeTableSection(ew, sep, a)

	return ew.err
}

func (t *TextWriter) writeBaseSection(ew *errWriter, sep, title string, entries []weights.BaseChange, withExec bool) {
	sectionHeader(ew, sep, title)
	if len(entries) == 0 {
		ew.println("  None found.")
		return
	}
	for _, e := range entries {
		ew.printf("  %s\n", e.Change.Label())
		ew.printf("    base ref_time: %s -> %s (%s)\n", commas(e.Old), commas(e.New), pctString(e.Percent))
		if !withExec {
			continue
		}
		oldT, newT := e.Change.Old.MinExecTime, e.Change.New.MinExecTime
		if oldT != nil && newT != nil && *oldT > 0 && *newT > 0 {
			ew.printf("    min exec time: %s -> %s (%s)\n",
				commas(*oldT), commas(*newT), pctString(weights.PercentChange(*oldT, *newT)))
		}
	}
}

func (t *TextWriter) writeMultiplierSection(ew *errWriter, sep string, a *weights.Analysis) {
	sectionHeader(ew, sep, fmt.Sprintf("SECTION 3: PER-VARIABLE ref_time MULTIPLIER CHANGES > %.0f%%", a.Threshold))
	if len(a.MultiplierGroups) == 0 {
		ew.println("  None found.")
		return
	}
	for _, g := range a.MultiplierGroups {
		ew.printf("\n  %s\n", g.Change.Label())
		for _, m := range g.Multipliers {
			ew.printf("    per-%s ref_time: %s -> %s (%s)\n",
				m.Variable, scaledWeight(m.Old), scaledWeight(m.New), mulPctString(m.Percent))
		}
		for _, r := range g.ReadDeltas {
			ew.printf("    per-%s DB reads: %d -> %d\n", r.Variable, r.Old, r.New)
		}
	}
}

func (t *TextWriter) writeMinExecSection(ew *errWriter, sep string, a *weights.Analysis) {
	sectionHeader(ew, sep, fmt.Sprintf("SECTION 4: MINIMUM EXECUTION TIME CHANGES > %.0f%%", a.Threshold))
	if len(a.MinExecChanges) == 0 {
		ew.println("  None found.")
		return
	}
	for _, e := range a.MinExecChanges {
		direction := "INCREASE"
		if e.Percent < 0 {
			direction = "DECREASE"
		}
		ew.printf("  %s\n", e.Change.Label())
		ew.printf("    %s: %s -> %s (%s)\n",
			direction, scaledWeight(e.Old), scaledWeight(e.New), pctString(e.Percent))
	}
}

func (t *TextWriter) writeProofSection(ew *errWriter, sep string, a *weights.Analysis) {
	sectionHeader(ew, sep, fmt.Sprintf("SECTION 5: proof_size PER-VARIABLE CHANGES > %.0f%%", weights.ProofThreshold))
	if len(a.ProofChanges) == 0 {
		ew.println("  None found.")
		return
	}
	for _, e := range a.ProofChanges {
		ew.printf("  %s\n", e.Change.Label())
		ew.printf("    per-%s proof_size: %s -> %s (%s)\n",
			e.Variable, scaledWeight(e.Old), scaledWeight(e.New), pctString(e.Percent))
	}
}

func (t *TextWriter) writeRuntimeSection(ew *errWriter, sep string, a *weights.Analysis) {
	sectionHeader(ew, sep, "SECTION 6: PER-RUNTIME SUMMARY")
	if len(a.RuntimeSummaries) == 0 {
		ew.println("  None found.")
		return
	}
	for _, s := range a.RuntimeSummaries {
		ew.printf("\n  %s: %d functions changed\n", s.Runtime, s.Functions)
		ew.printf("    Min exec time: %d increases, %d decreases, avg %+.1f%%\n",
			s.Increases, s.Decreases, s.Mean)
		if s.FlaggedUp > 0 || s.FlaggedDown > 0 {
			ew.printf("    Flagged: %d increases >%.0f%%, %d decreases >%.0f%%\n",
				s.FlaggedUp, a.Threshold, s.FlaggedDown, a.Threshold)
		}
	}
}

func (t *TextWriter) writeTableSection(ew *errWriter, sep string, a *weights.Analysis) {
	sectionHeader(ew, sep, "SECTION 7: ALL MINIMUM EXECUTION TIME CHANGES (sorted by |change|)")
	if len(a.AllMinExec) == 0 {
		ew.println("  None found.")
		return
	}
	ew.printf("%-12s %-45s %-40s %12s %12s %8s\n", "Runtime", "Pallet", "Function", "Old", "New", "Change")
	ew.printf("%s %s %s %s %s %s\n",
		dashes(12), dashes(45), dashes(40), dashes(12), dashes(12), dashes(8))
	for _, e := range a.AllMinExec {
		ew.printf("%-12s %-45s %-40s %12s %12s %+7.1f%%\n",
			e.Change.Runtime, e.Change.Pallet, e.Change.Function,
			scaledWeight(e.Old), scaledWeight(e.New), float64(e.Percent))
	}
}

func sectionHeader(ew *errWriter, sep, title string) {
	ew.printf("\n%s\n", sep)
	ew.println(title)
	ew.println(sep)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// pctString renders a percent change, using NEW for terms with no
// prior value.
func pctString(p weights.Percent) string {
	if p.IsAppeared() {
		return "NEW"
	}
	return fmt.Sprintf("%+.1f%%", float64(p))
}

// mulPctString additionally renders the removal sentinel. A genuine
// -100% cannot occur for a multiplier present on both sides, so the
// sentinel is unambiguous.
func mulPctString(p weights.Percent) string {
	if p == weights.Removed {
		return "REMOVED"
	}
	return pctString(p)
}

// commas renders v with comma digit grouping (1234567 -> "1,234,567").
func commas(v uint64) string {
	s := strconv.FormatUint(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// scaledWeight renders a weight value with an SI prefix
// (1234500 -> "1.234M"). Zero stays "0".
func scaledWeight(v uint64) string {
	if v == 0 {
		return "0"
	}
	return benchunit.Scale(float64(v), benchunit.Decimal)
}

func dashes(n int) string {
	return strings.Repeat("-", n)
}
