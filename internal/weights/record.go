package weights

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognizer patterns for generated weight declarations. Every numeric
// capture group matches only digit runs with optional underscore
// separators, so a structural match always yields a parseable number.
var (
	minExecRE   = regexp.MustCompile(`Minimum execution time:\s*([\d_]+)\s*picoseconds`)
	fromPartsRE = regexp.MustCompile(`Weight::from_parts\(\s*([\d_]+)\s*,\s*([\d_]+)\s*\)`)
	mulRE       = regexp.MustCompile(`\.saturating_add\(Weight::from_parts\(\s*([\d_]+)\s*,\s*([\d_]+)\s*\)\.saturating_mul\((\w+)\.into\(\)\)\)`)
	readsMulRE  = regexp.MustCompile(`\.reads\(\((\d+)_u64\)\.saturating_mul\((\w+)`)
	readsRE     = regexp.MustCompile(`\.reads\((\d+)_u64\)`)
)

// ParseRecord extracts the weight components declared in one side of an
// extrinsic's diff. Recognizers are tried in priority order and the
// first match claims the line; lines that match nothing are ignored.
func ParseRecord(lines []string) Record {
	rec := Record{
		RefMultipliers:   make(map[string]uint64),
		ProofMultipliers: make(map[string]uint64),
		ReadMultipliers:  make(map[string]uint64),
	}
	baseSeen := false

	for _, line := range lines {
		clean := strings.TrimSpace(line)

		if m := minExecRE.FindStringSubmatch(clean); m != nil {
			if rec.MinExecTime == nil {
				v := parseWeightValue(m[1])
				rec.MinExecTime = &v
			}
			continue
		}

		// The base Weight::from_parts term is the first one not nested
		// in a saturating_add. Generated weight expressions state the
		// base term once, before any additive terms, so later bare
		// matches are ignored. This is a contract about generated code
		// shape, not an accident of scan order.
		if !strings.Contains(clean, "saturating_add") {
			if m := fromPartsRE.FindStringSubmatch(clean); m != nil {
				if !baseSeen {
					rec.RefTime = parseWeightValue(m[1])
					rec.ProofSize = parseWeightValue(m[2])
					baseSeen = true
				}
				continue
			}
		}

		// .saturating_add(Weight::from_parts(X, Y).saturating_mul(VAR.into()))
		if m := mulRE.FindStringSubmatch(clean); m != nil {
			if v := parseWeightValue(m[1]); v > 0 {
				rec.RefMultipliers[m[3]] = v
			}
			if v := parseWeightValue(m[2]); v > 0 {
				rec.ProofMultipliers[m[3]] = v
			}
			continue
		}

		// .reads((N_u64).saturating_mul(VAR...))
		if m := readsMulRE.FindStringSubmatch(clean); m != nil {
			rec.ReadMultipliers[m[2]] = parseWeightValue(m[1])
			continue
		}

		// Bare .reads(N_u64)
		if m := readsRE.FindStringSubmatch(clean); m != nil && !strings.Contains(clean, "saturating_mul") {
			rec.Reads = parseWeightValue(m[1])
		}
	}

	return rec
}

// parseWeightValue parses a digit run after stripping underscore
// grouping separators.
func parseWeightValue(s string) uint64 {
	n, _ := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 10, 64)
	return n
}
