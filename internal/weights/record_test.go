package weights

import (
	"testing"
)

func TestParseRecord_Base(t *testing.T) {
	rec := ParseRecord([]string{
		"		Weight::from_parts(25_000_000, 3593)",
	})
	if rec.RefTime != 25000000 {
		t.Errorf("RefTime = %d, want 25000000", rec.RefTime)
	}
	if rec.ProofSize != 3593 {
		t.Errorf("ProofSize = %d, want 3593", rec.ProofSize)
	}
}

func TestParseRecord_FirstBaseWins(t *testing.T) {
	rec := ParseRecord([]string{
		"Weight::from_parts(100, 10)",
		"Weight::from_parts(999, 99)",
	})
	if rec.RefTime != 100 || rec.ProofSize != 10 {
		t.Errorf("got (%d, %d), want first match (100, 10)", rec.RefTime, rec.ProofSize)
	}
}

func TestParseRecord_MinExecFirstOnly(t *testing.T) {
	rec := ParseRecord([]string{
		"// Minimum execution time: 21_910_000 picoseconds.",
		"// Minimum execution time: 99_999_999 picoseconds.",
	})
	if rec.MinExecTime == nil {
		t.Fatal("MinExecTime is nil")
	}
	if *rec.MinExecTime != 21910000 {
		t.Errorf("MinExecTime = %d, want 21910000", *rec.MinExecTime)
	}
}

func TestParseRecord_Multipliers(t *testing.T) {
	rec := ParseRecord([]string{
		"Weight::from_parts(20_000_000, 3593)",
		".saturating_add(Weight::from_parts(1_500_000, 2500).saturating_mul(r.into()))",
		".saturating_add(Weight::from_parts(7_000, 0).saturating_mul(s.into()))",
	})
	if got := rec.RefMultipliers["r"]; got != 1500000 {
		t.Errorf("RefMultipliers[r] = %d, want 1500000", got)
	}
	if got := rec.ProofMultipliers["r"]; got != 2500 {
		t.Errorf("ProofMultipliers[r] = %d, want 2500", got)
	}
	if got := rec.RefMultipliers["s"]; got != 7000 {
		t.Errorf("RefMultipliers[s] = %d, want 7000", got)
	}
	// Zero proof multiplier must not be stored.
	if _, ok := rec.ProofMultipliers["s"]; ok {
		t.Error("zero-valued proof multiplier for s should be dropped")
	}
}

func TestParseRecord_NestedFromPartsNotBase(t *testing.T) {
	// The from_parts inside a saturating_add must not claim the base.
	rec := ParseRecord([]string{
		".saturating_add(Weight::from_parts(1_000, 0).saturating_mul(n.into()))",
		"Weight::from_parts(50_000, 100)",
	})
	if rec.RefTime != 50000 {
		t.Errorf("RefTime = %d, want 50000", rec.RefTime)
	}
	if got := rec.RefMultipliers["n"]; got != 1000 {
		t.Errorf("RefMultipliers[n] = %d, want 1000", got)
	}
}

func TestParseRecord_Reads(t *testing.T) {
	rec := ParseRecord([]string{
		".saturating_add(T::DbWeight::get().reads(3_u64))",
		".saturating_add(T::DbWeight::get().reads((1_u64).saturating_mul(m.into())))",
	})
	if rec.Reads != 3 {
		t.Errorf("Reads = %d, want 3", rec.Reads)
	}
	if got := rec.ReadMultipliers["m"]; got != 1 {
		t.Errorf("ReadMultipliers[m] = %d, want 1", got)
	}
}

func TestParseRecord_ReadsMulDoesNotSetBareReads(t *testing.T) {
	rec := ParseRecord([]string{
		".saturating_add(T::DbWeight::get().reads((2_u64).saturating_mul(x.into())))",
	})
	if rec.Reads != 0 {
		t.Errorf("Reads = %d, want 0 (multiplied reads only)", rec.Reads)
	}
	if got := rec.ReadMultipliers["x"]; got != 2 {
		t.Errorf("ReadMultipliers[x] = %d, want 2", got)
	}
}

func TestParseRecord_IgnoresUnrelatedLines(t *testing.T) {
	rec := ParseRecord([]string{
		"// Proof Size summary in bytes:",
		"//  Measured:  `76`",
		"fn transfer() -> Weight {",
	})
	if rec.hasWeightData() {
		t.Error("record with no weight lines should carry no weight data")
	}
}

func TestParseRecord_PositiveOnlyMultiplierMaps(t *testing.T) {
	rec := ParseRecord([]string{
		".saturating_add(Weight::from_parts(0, 0).saturating_mul(z.into()))",
	})
	if len(rec.RefMultipliers) != 0 || len(rec.ProofMultipliers) != 0 {
		t.Errorf("zero multipliers stored: ref=%v proof=%v", rec.RefMultipliers, rec.ProofMultipliers)
	}
}

func TestParseWeightValue(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"123", 123},
		{"1_000_000", 1000000},
		{"21_910_000", 21910000},
	}
	for _, tt := range tests {
		if got := parseWeightValue(tt.in); got != tt.want {
			t.Errorf("parseWeightValue(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
