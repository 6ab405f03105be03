package weights

import (
	"errors"
	"reflect"
	"testing"
)

const sampleDiff = `diff --git a/runtime/moonbeam/src/weights/pallet_balances.rs b/runtime/moonbeam/src/weights/pallet_balances.rs
--- a/runtime/moonbeam/src/weights/pallet_balances.rs
+++ b/runtime/moonbeam/src/weights/pallet_balances.rs
@@ -10,2 +10,2 @@ fn transfer() -> Weight {
-	// Minimum execution time: 20_000_000 picoseconds.
-	Weight::from_parts(20_000_000, 3593)
+	// Minimum execution time: 45_000_000 picoseconds.
+	Weight::from_parts(45_000_000, 3593)
`

func TestExtractChanges_PathFilter(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{"weights file", "runtime/moonbeam/src/weights/pallet_balances.rs", 1},
		{"nested weights dir", "runtime/moonriver/weights/pallet_assets.rs", 1},
		{"not under weights", "runtime/moonbeam/src/lib.rs", 0},
		{"weights not a dir component", "runtime/moonbeam/src/weights_helper/pallet.rs", 0},
	}
	for _, tt := range tests {
		diffText := `diff --git a/` + tt.path + ` b/` + tt.path + `
--- a/` + tt.path + `
+++ b/` + tt.path + `
@@ -10,1 +10,1 @@ fn transfer() -> Weight {
-	Weight::from_parts(100, 10)
+	Weight::from_parts(200, 20)
`
		changes, err := ExtractChanges(diffText)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if len(changes) != tt.want {
			t.Errorf("%s: got %d changes, want %d", tt.name, len(changes), tt.want)
		}
	}
}

func TestExtractChanges_RuntimeAndPallet(t *testing.T) {
	changes, err := ExtractChanges(sampleDiff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	c := changes[0]
	if c.Runtime != "moonbeam" || c.Pallet != "pallet_balances" || c.Function != "transfer" {
		t.Errorf("got %s/%s/%s", c.Runtime, c.Pallet, c.Function)
	}
	if got := c.Label(); got != "[moonbeam] pallet_balances::transfer" {
		t.Errorf("Label() = %q", got)
	}
	if c.Old.RefTime != 20000000 || c.New.RefTime != 45000000 {
		t.Errorf("base ref_time = %d -> %d", c.Old.RefTime, c.New.RefTime)
	}
}

func TestExtractChanges_DropsFunctionsWithoutWeightData(t *testing.T) {
	diffText := `diff --git a/runtime/moonbeam/src/weights/pallet_balances.rs b/runtime/moonbeam/src/weights/pallet_balances.rs
--- a/runtime/moonbeam/src/weights/pallet_balances.rs
+++ b/runtime/moonbeam/src/weights/pallet_balances.rs
@@ -5,2 +5,2 @@ fn transfer() -> Weight {
-	// Storage: System Account (r:1 w:1)
+	// Storage: System Account (r:2 w:2)
`
	changes, err := ExtractChanges(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("got %d changes, want 0 (comment-only change)", len(changes))
	}
}

func TestExtractChanges_FunctionsSortedWithinFile(t *testing.T) {
	diffText := `diff --git a/runtime/moonbeam/src/weights/pallet_balances.rs b/runtime/moonbeam/src/weights/pallet_balances.rs
--- a/runtime/moonbeam/src/weights/pallet_balances.rs
+++ b/runtime/moonbeam/src/weights/pallet_balances.rs
@@ -10,1 +10,1 @@ fn transfer() -> Weight {
-	Weight::from_parts(100, 10)
+	Weight::from_parts(200, 20)
@@ -30,1 +30,1 @@ fn burn() -> Weight {
-	Weight::from_parts(300, 30)
+	Weight::from_parts(600, 60)
`
	changes, err := ExtractChanges(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, c := range changes {
		names = append(names, c.Function)
	}
	want := []string{"burn", "transfer"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("function order = %v, want %v", names, want)
	}
}

func TestExtractChanges_DeletedFileUsesOrigPath(t *testing.T) {
	diffText := `diff --git a/runtime/moonbeam/src/weights/pallet_sudo.rs b/runtime/moonbeam/src/weights/pallet_sudo.rs
--- a/runtime/moonbeam/src/weights/pallet_sudo.rs
+++ /dev/null
@@ -10,1 +0,0 @@ fn sudo() -> Weight {
-	Weight::from_parts(5_000, 50)
`
	changes, err := ExtractChanges(diffText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].Pallet != "pallet_sudo" {
		t.Errorf("pallet = %q, want pallet_sudo", changes[0].Pallet)
	}
	if changes[0].New.hasWeightData() {
		t.Error("deleted file should have no new-side weight data")
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t\n"} {
		_, err := Analyze(in, 50)
		if !errors.Is(err, ErrEmptyDiff) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyDiff", in, err)
		}
	}
}

func TestAnalyze_NoWeightFilesIsNotAnError(t *testing.T) {
	diffText := `diff --git a/src/lib.rs b/src/lib.rs
--- a/src/lib.rs
+++ b/src/lib.rs
@@ -1,1 +1,1 @@
-old line
+new line
`
	a, err := Analyze(diffText, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Total != 0 {
		t.Errorf("Total = %d, want 0", a.Total)
	}
	if a.Significant() {
		t.Error("empty analysis should not be significant")
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a1, err := Analyze(sampleDiff, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, err := Analyze(sampleDiff, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a1, a2) {
		t.Error("repeated runs over the same diff differ")
	}
}
