package internaldefs

import (
	"reflect"
	"testing"
	"time"

	goCSRF "github.com/dualtoken/goCSRF"
)

func TestCumulativeBuckets(t *testing.T) {
	tests := []struct {
		name string
		raw  []uint64
		want []uint64
	}{
		{name: "empty", raw: nil, want: []uint64{0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "short", raw: []uint64{1, 2, 3}, want: []uint64{1, 3, 6, 6, 6, 6, 6, 6}},
		{name: "full", raw: []uint64{1, 1, 1, 1, 1, 1, 1, 1}, want: []uint64{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "overflow folds into inf", raw: []uint64{1, 0, 0, 0, 0, 0, 0, 1, 5}, want: []uint64{1, 1, 1, 1, 1, 1, 1, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CumulativeBuckets(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CumulativeBuckets(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFamilyNamesUnique(t *testing.T) {
	seen := map[string]bool{InvalidReasons.Name: true}
	for _, def := range CounterDefs {
		if seen[def.Name] {
			t.Fatalf("duplicate family name %s", def.Name)
		}
		seen[def.Name] = true
	}
	for _, def := range HistogramDefs {
		if seen[def.Name] {
			t.Fatalf("duplicate family name %s", def.Name)
		}
		seen[def.Name] = true
	}
}

func TestInvalidReasonsCoverDistinctCounters(t *testing.T) {
	ids := map[goCSRF.MetricID]bool{}
	labels := map[string]bool{}
	for _, r := range InvalidReasons.Reasons {
		if ids[r.ID] || labels[r.Reason] {
			t.Fatalf("duplicate reason %+v", r)
		}
		ids[r.ID] = true
		labels[r.Reason] = true
	}
	if len(ids) != 5 {
		t.Fatalf("expected 5 failure classes, got %d", len(ids))
	}
}

func TestBackendLabel(t *testing.T) {
	if got := BackendLabel(goCSRF.MetricsSnapshot{Backend: goCSRF.BackendHMAC}); got != "hmac" {
		t.Fatalf("BackendLabel(hmac) = %q", got)
	}
	if got := BackendLabel(goCSRF.MetricsSnapshot{}); got != UnknownBackend {
		t.Fatalf("BackendLabel(empty) = %q", got)
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1500 * time.Microsecond); got != "0.0015" {
		t.Fatalf("Seconds = %q", got)
	}
}
