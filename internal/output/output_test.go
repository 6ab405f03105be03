package output

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/substrate-tools/weightlens/internal/weights"
)

func TestGetWriter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"markdown", false},
		{"json", false},
		{"yaml", true},
		{"", true},
	}
	for _, tt := range tests {
		w, err := GetWriter(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("GetWriter(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("GetWriter(%q) unexpected error: %v", tt.format, err)
			continue
		}
		if w == nil {
			t.Errorf("GetWriter(%q) returned nil writer", tt.format)
		}
	}
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	a := sampleAnalysis(t)
	var sb strings.Builder
	if err := (&JSONWriter{}).Write(&sb, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["threshold"] != 50.0 {
		t.Errorf("threshold = %v", decoded["threshold"])
	}
	if decoded["total"] != 1.0 {
		t.Errorf("total = %v", decoded["total"])
	}
}

func TestJSONWriter_AppearedPercent(t *testing.T) {
	c := weights.Change{
		Runtime:  "moonbeam",
		Pallet:   "pallet_proxy",
		Function: "proxy",
		Old:      weights.Record{},
		New:      weights.Record{RefMultipliers: map[string]uint64{"n": 42}},
	}
	a := weights.Classify([]weights.Change{c}, 50)

	var sb strings.Builder
	if err := (&JSONWriter{}).Write(&sb, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), `"percent": "new"`) {
		t.Errorf("appeared percent should serialize as \"new\":\n%s", sb.String())
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestMarkdownWriter_Significant(t *testing.T) {
	a := sampleAnalysis(t)
	var sb strings.Builder
	if err := (&MarkdownWriter{}).Write(&sb, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "## Weight Diff Analysis") {
		t.Error("missing markdown title")
	}
	if !strings.Contains(out, "Threshold: 50% | Functions changed: 1") {
		t.Error("missing summary line")
	}
	if !strings.Contains(out, "<details>") {
		t.Error("sections should be collapsible")
	}
	if !strings.Contains(out, "`[moonbeam] pallet_balances::transfer`") {
		t.Error("missing change label")
	}
	if strings.Contains(out, "No significant weight changes found") {
		t.Error("significant analysis must not show the all-clear line")
	}
}

func TestMarkdownWriter_NoFindings(t *testing.T) {
	a := weights.Classify(nil, 50)
	var sb strings.Builder
	if err := (&MarkdownWriter{}).Write(&sb, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sb.String(), "No significant weight changes found") {
		t.Errorf("missing all-clear line:\n%s", sb.String())
	}
}

func TestWriteReport_ToFile(t *testing.T) {
	a := weights.Classify(nil, 50)
	path := t.TempDir() + "/report.json"
	if err := WriteReport(a, "json", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sb strings.Builder
	if err := (&JSONWriter{}).Write(&sb, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if string(data) != sb.String() {
		t.Error("file contents differ from direct writer output")
	}
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	if err := WriteReport(weights.Classify(nil, 50), "bogus", ""); err == nil {
		t.Error("expected error for unknown format")
	}
}
