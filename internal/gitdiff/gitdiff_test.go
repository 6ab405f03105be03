package gitdiff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.diff")
	content := "diff --git a/runtime/moonbeam/src/weights/pallet_balances.rs b/runtime/moonbeam/src/weights/pallet_balances.rs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	res, err := File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Diff != content {
		t.Errorf("Diff = %q", res.Diff)
	}
	if res.Source != "file" || res.Range != path {
		t.Errorf("Source = %q, Range = %q", res.Source, res.Range)
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.diff"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStdin(t *testing.T) {
	res, err := Stdin(strings.NewReader("diff --git a/x b/x\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != "stdin" {
		t.Errorf("Source = %q, want stdin", res.Source)
	}
	if res.Diff != "diff --git a/x b/x\n" {
		t.Errorf("Diff = %q", res.Diff)
	}
}
