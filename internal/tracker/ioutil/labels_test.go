package ioutil

import (
	"strings"
	"testing"
)

const sampleLabels = `
EVENT 0 2
11 0.5 1.0 0.2 211 3
12 1.2 2.1 -0.4 -211 4
ENDEVENT

EVENT 1 1
21 0.8 0.3 0.1 2212 5
ENDEVENT
`

func TestParseLabelsGoldenFile(t *testing.T) {
	lookups, err := parseLabels(strings.NewReader(sampleLabels))
	if err != nil {
		t.Fatalf("parseLabels: %v", err)
	}
	if len(lookups) != 2 {
		t.Fatalf("got %d label blocks, want 2", len(lookups))
	}

	lbl, ok := lookups[0][11]
	if !ok {
		t.Fatal("expected mc id 11 in event 0's lookup")
	}
	if lbl.Pt != 0.5 || lbl.PDGCode != 211 || lbl.NClusters != 3 {
		t.Errorf("label 11 = %+v", lbl)
	}

	if _, ok := lookups[1][21]; !ok {
		t.Fatal("expected mc id 21 in event 1's lookup")
	}
}

func TestParseLabelsRejectsTruncatedList(t *testing.T) {
	body := "EVENT 0 2\n11 0.5 1.0 0.2 211 3\nENDEVENT\n"
	if _, err := parseLabels(strings.NewReader(body)); err == nil {
		t.Error("expected an error for a truncated label list")
	}
}

func TestParseLabelsRejectsMissingEndMarker(t *testing.T) {
	body := "EVENT 0 1\n11 0.5 1.0 0.2 211 3\n"
	if _, err := parseLabels(strings.NewReader(body)); err == nil {
		t.Error("expected an error for a missing ENDEVENT marker")
	}
}
