package weights

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ProofThreshold is the fixed percentage gate for per-variable
// proof_size changes. Proof sizes move whenever storage layouts shift,
// so they are screened against their own gate rather than the
// caller-supplied threshold.
const ProofThreshold = 100.0

// BaseChange is a base ref_time change flagged against the threshold.
type BaseChange struct {
	Change  Change  `json:"change"`
	Old     uint64  `json:"old"`
	New     uint64  `json:"new"`
	Percent Percent `json:"percent"`
}

// MinExecChange is a minimum execution time change for an extrinsic
// measured on both sides.
type MinExecChange struct {
	Change  Change  `json:"change"`
	Old     uint64  `json:"old"`
	New     uint64  `json:"new"`
	Percent Percent `json:"percent"`
}

// MultiplierChange is a per-variable ref_time multiplier change.
// Percent is Appeared when the variable is new and Removed when it is
// gone from the new side.
type MultiplierChange struct {
	Variable string  `json:"variable"`
	Old      uint64  `json:"old"`
	New      uint64  `json:"new"`
	Percent  Percent `json:"percent"`
}

// ReadDelta is a per-variable DB read multiplier difference. Read
// deltas are informational and never threshold-gated.
type ReadDelta struct {
	Variable string `json:"variable"`
	Old      uint64 `json:"old"`
	New      uint64 `json:"new"`
}

// MultiplierGroup collects the flagged multiplier changes of one
// extrinsic together with its read deltas.
type MultiplierGroup struct {
	Change      Change             `json:"change"`
	Multipliers []MultiplierChange `json:"multipliers"`
	ReadDeltas  []ReadDelta        `json:"readDeltas,omitempty"`
}

// ProofChange is a per-variable proof_size multiplier change flagged
// against the fixed ProofThreshold gate.
type ProofChange struct {
	Change   Change  `json:"change"`
	Variable string  `json:"variable"`
	Old      uint64  `json:"old"`
	New      uint64  `json:"new"`
	Percent  Percent `json:"percent"`
}

// ExecSummary holds scalar statistics over minimum execution time
// percent changes.
type ExecSummary struct {
	Count     int     `json:"count"`
	Increases int     `json:"increases"`
	Decreases int     `json:"decreases"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// RuntimeSummary aggregates one runtime's minimum execution time
// changes.
type RuntimeSummary struct {
	Runtime     string  `json:"runtime"`
	Functions   int     `json:"functions"`
	Increases   int     `json:"increases"`
	Decreases   int     `json:"decreases"`
	Mean        float64 `json:"mean"`
	FlaggedUp   int     `json:"flaggedUp"`
	FlaggedDown int     `json:"flaggedDown"`
}

// Analysis is the classified result of one pipeline run. Every slice
// is ordered the way the report renders it; the output writers add no
// ordering of their own.
type Analysis struct {
	Threshold        float64           `json:"threshold"`
	Total            int               `json:"total"`
	Overall          *ExecSummary      `json:"overall,omitempty"`
	BaseIncreases    []BaseChange      `json:"baseIncreases"`
	BaseDecreases    []BaseChange      `json:"baseDecreases"`
	MultiplierGroups []MultiplierGroup `json:"multiplierGroups"`
	MinExecChanges   []MinExecChange   `json:"minExecChanges"`
	ProofChanges     []ProofChange     `json:"proofChanges"`
	RuntimeSummaries []RuntimeSummary  `json:"runtimeSummaries"`
	AllMinExec       []MinExecChange   `json:"allMinExec"`
}

// Significant reports whether any threshold-gated section flagged at
// least one change. Used for CI gating via --fail-on-significant.
func (a *Analysis) Significant() bool {
	return len(a.BaseIncreases) > 0 ||
		len(a.BaseDecreases) > 0 ||
		len(a.MultiplierGroups) > 0 ||
		len(a.MinExecChanges) > 0 ||
		len(a.ProofChanges) > 0
}

// Classify partitions the extracted changes into report sections.
// threshold gates the base ref_time, ref_time multiplier, and minimum
// execution time categories; proof_size uses the fixed ProofThreshold.
// All orderings break ties alphabetically so identical input always
// yields identical output.
func Classify(changes []Change, threshold float64) *Analysis {
	a := &Analysis{
		Threshold: threshold,
		Total:     len(changes),
	}

	a.BaseIncreases, a.BaseDecreases = classifyBase(changes, threshold)
	a.MultiplierGroups = classifyMultipliers(changes, threshold)
	a.MinExecChanges, a.AllMinExec = classifyMinExec(changes, threshold)
	a.ProofChanges = classifyProof(changes)
	a.RuntimeSummaries = summarizeRuntimes(changes, threshold)

	var ps []float64
	for _, c := range changes {
		if oldV, newV, ok := minExecPair(c); ok {
			ps = append(ps, float64(PercentChange(oldV, newV)))
		}
	}
	a.Overall = summarizeExec(ps)

	return a
}

func classifyBase(changes []Change, threshold float64) (inc, dec []BaseChange) {
	for _, c := range changes {
		if c.Old.RefTime == 0 || c.New.RefTime == 0 {
			continue
		}
		p := PercentChange(c.Old.RefTime, c.New.RefTime)
		entry := BaseChange{Change: c, Old: c.Old.RefTime, New: c.New.RefTime, Percent: p}
		switch {
		case float64(p) > threshold:
			inc = append(inc, entry)
		case float64(p) < -threshold:
			dec = append(dec, entry)
		}
	}
	sort.SliceStable(inc, func(i, j int) bool {
		if inc[i].Percent != inc[j].Percent {
			return inc[i].Percent > inc[j].Percent
		}
		return inc[i].Change.Label() < inc[j].Change.Label()
	})
	sort.SliceStable(dec, func(i, j int) bool {
		if dec[i].Percent != dec[j].Percent {
			return dec[i].Percent < dec[j].Percent
		}
		return dec[i].Change.Label() < dec[j].Change.Label()
	})
	return inc, dec
}

func classifyMultipliers(changes []Change, threshold float64) []MultiplierGroup {
	var groups []MultiplierGroup
	for _, c := range changes {
		var entries []MultiplierChange
		for _, v := range unionKeys(c.Old.RefMultipliers, c.New.RefMultipliers) {
			oldV := c.Old.RefMultipliers[v]
			newV := c.New.RefMultipliers[v]
			switch {
			case oldV > 0 && newV > 0:
				p := PercentChange(oldV, newV)
				if p.magnitude() > threshold {
					entries = append(entries, MultiplierChange{Variable: v, Old: oldV, New: newV, Percent: p})
				}
			case oldV == 0 && newV > 0:
				entries = append(entries, MultiplierChange{Variable: v, Old: oldV, New: newV, Percent: Appeared})
			case oldV > 0 && newV == 0:
				// Removals are always reported, regardless of threshold.
				entries = append(entries, MultiplierChange{Variable: v, Old: oldV, New: newV, Percent: Removed})
			}
		}
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			mi, mj := entries[i].Percent.magnitude(), entries[j].Percent.magnitude()
			if mi != mj {
				return mi > mj
			}
			return entries[i].Variable < entries[j].Variable
		})

		group := MultiplierGroup{Change: c, Multipliers: entries}
		for _, v := range unionKeys(c.Old.ReadMultipliers, c.New.ReadMultipliers) {
			oldR := c.Old.ReadMultipliers[v]
			newR := c.New.ReadMultipliers[v]
			if oldR != newR {
				group.ReadDeltas = append(group.ReadDeltas, ReadDelta{Variable: v, Old: oldR, New: newR})
			}
		}
		groups = append(groups, group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Change.Label() < groups[j].Change.Label()
	})
	return groups
}

func classifyMinExec(changes []Change, threshold float64) (flagged, all []MinExecChange) {
	for _, c := range changes {
		oldV, newV, ok := minExecPair(c)
		if !ok {
			continue
		}
		p := PercentChange(oldV, newV)
		entry := MinExecChange{Change: c, Old: oldV, New: newV, Percent: p}
		all = append(all, entry)
		if p.magnitude() > threshold {
			flagged = append(flagged, entry)
		}
	}
	byMagnitude := func(s []MinExecChange) func(i, j int) bool {
		return func(i, j int) bool {
			mi, mj := s[i].Percent.magnitude(), s[j].Percent.magnitude()
			if mi != mj {
				return mi > mj
			}
			return s[i].Change.Label() < s[j].Change.Label()
		}
	}
	sort.SliceStable(flagged, byMagnitude(flagged))
	sort.SliceStable(all, byMagnitude(all))
	return flagged, all
}

func classifyProof(changes []Change) []ProofChange {
	var flagged []ProofChange
	for _, c := range changes {
		for _, v := range unionKeys(c.Old.ProofMultipliers, c.New.ProofMultipliers) {
			oldV := c.Old.ProofMultipliers[v]
			newV := c.New.ProofMultipliers[v]
			switch {
			case oldV > 0 && newV > 0:
				p := PercentChange(oldV, newV)
				if p.magnitude() > ProofThreshold {
					flagged = append(flagged, ProofChange{Change: c, Variable: v, Old: oldV, New: newV, Percent: p})
				}
			case oldV == 0 && newV > 0:
				flagged = append(flagged, ProofChange{Change: c, Variable: v, Old: oldV, New: newV, Percent: Appeared})
			}
			// A proof multiplier present only on the old side is not
			// reported in this section.
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		mi, mj := flagged[i].Percent.magnitude(), flagged[j].Percent.magnitude()
		if mi != mj {
			return mi > mj
		}
		if flagged[i].Change.Label() != flagged[j].Change.Label() {
			return flagged[i].Change.Label() < flagged[j].Change.Label()
		}
		return flagged[i].Variable < flagged[j].Variable
	})
	return flagged
}

func summarizeRuntimes(changes []Change, threshold float64) []RuntimeSummary {
	seen := make(map[string]bool)
	var runtimes []string
	for _, c := range changes {
		if !seen[c.Runtime] {
			seen[c.Runtime] = true
			runtimes = append(runtimes, c.Runtime)
		}
	}
	sort.Strings(runtimes)

	var summaries []RuntimeSummary
	for _, rt := range runtimes {
		var functions int
		var ps []float64
		for _, c := range changes {
			if c.Runtime != rt {
				continue
			}
			functions++
			if oldV, newV, ok := minExecPair(c); ok {
				ps = append(ps, float64(PercentChange(oldV, newV)))
			}
		}
		if len(ps) == 0 {
			continue
		}
		s := RuntimeSummary{Runtime: rt, Functions: functions, Mean: stats.Mean(ps)}
		for _, p := range ps {
			if p > 0 {
				s.Increases++
			} else if p < 0 {
				s.Decreases++
			}
			if p > threshold {
				s.FlaggedUp++
			} else if p < -threshold {
				s.FlaggedDown++
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func summarizeExec(ps []float64) *ExecSummary {
	if len(ps) == 0 {
		return nil
	}
	s := &ExecSummary{Count: len(ps)}
	for _, p := range ps {
		if p > 0 {
			s.Increases++
		} else if p < 0 {
			s.Decreases++
		}
	}
	s.Mean = stats.Mean(ps)
	s.Median = stats.Sample{Xs: ps}.Quantile(0.5)
	s.Min, s.Max = stats.Bounds(ps)
	return s
}

// minExecPair returns the minimum execution times when both sides were
// measured with nonzero values.
func minExecPair(c Change) (oldV, newV uint64, ok bool) {
	if c.Old.MinExecTime == nil || c.New.MinExecTime == nil {
		return 0, 0, false
	}
	oldV, newV = *c.Old.MinExecTime, *c.New.MinExecTime
	if oldV == 0 || newV == 0 {
		return 0, 0, false
	}
	return oldV, newV, true
}

// unionKeys returns the sorted union of both maps' keys.
func unionKeys(a, b map[string]uint64) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
