package internaldefs

import (
	"strconv"
	"time"

	goCSRF "github.com/dualtoken/goCSRF"
)

// Label keys shared by every exporter.
const (
	LabelBackend = "backend"
	LabelReason  = "reason"
	LabelLE      = "le"
)

// UnknownBackend labels snapshots that carry no backend, such as a bare
// goCSRF.Metrics.
const UnknownBackend = "unknown"

// CounterDef names one engine counter family.
type CounterDef struct {
	ID   goCSRF.MetricID
	Name string
	Help string
}

// ReasonDef maps one invalid-token failure class onto the reason label.
type ReasonDef struct {
	ID     goCSRF.MetricID
	Reason string
}

// HistogramDef names one engine histogram.
type HistogramDef struct {
	ID   goCSRF.MetricID
	Name string
	Help string
}

// CounterDefs lists every plain counter in render order.
var CounterDefs = []CounterDef{
	{ID: goCSRF.MetricCreateSuccess, Name: "gocsrf_create_success_total", Help: "Token pairs issued."},
	{ID: goCSRF.MetricCreateFailure, Name: "gocsrf_create_failure_total", Help: "Token pair issuance failures."},
	{ID: goCSRF.MetricVerifySuccess, Name: "gocsrf_verify_success_total", Help: "Token pairs accepted."},
	{ID: goCSRF.MetricVerifyMissingToken, Name: "gocsrf_verify_missing_token_total", Help: "Verifications rejected with MISSING_TOKEN."},
	{ID: goCSRF.MetricVerifyInvalidToken, Name: "gocsrf_verify_invalid_token_total", Help: "Verifications rejected with INVALID_TOKEN."},
}

// InvalidReasons is the INVALID_TOKEN breakdown rendered as one family with
// a reason label.
var InvalidReasons = struct {
	Name    string
	Help    string
	Reasons []ReasonDef
}{
	Name: "gocsrf_verify_invalid_token_reasons_total",
	Help: "INVALID_TOKEN rejections by failure class.",
	Reasons: []ReasonDef{
		{ID: goCSRF.MetricVerifyInvalidMalformed, Reason: "malformed"},
		{ID: goCSRF.MetricVerifyInvalidSignature, Reason: "signature"},
		{ID: goCSRF.MetricVerifyInvalidExpired, Reason: "expired"},
		{ID: goCSRF.MetricVerifyInvalidPurpose, Reason: "purpose"},
		{ID: goCSRF.MetricVerifyInvalidMismatch, Reason: "mismatch"},
	},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goCSRF.MetricVerifyLatency, Name: "gocsrf_verify_latency_seconds", Help: "Verify latency histogram."},
}

// HistogramBounds are the "le" label values, in seconds, matching the
// engine's microsecond buckets.
var HistogramBounds = []string{
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"0.001",
	"0.0025",
	"0.005",
	"+Inf",
}

// BackendLabel returns the backend label value for snapshot.
func BackendLabel(snapshot goCSRF.MetricsSnapshot) string {
	if snapshot.Backend == "" {
		return UnknownBackend
	}
	return string(snapshot.Backend)
}

// CumulativeBuckets converts per-bucket counts to running totals, one per
// HistogramBounds entry. Missing trailing buckets count as zero and extra
// ones fold into +Inf.
func CumulativeBuckets(raw []uint64) []uint64 {
	out := make([]uint64, len(HistogramBounds))
	var running uint64
	for i, v := range raw {
		running += v
		if i < len(out) {
			out[i] = running
		} else {
			out[len(out)-1] = running
		}
	}
	for i := len(raw); i < len(out); i++ {
		out[i] = running
	}
	return out
}

// Seconds formats d for a _sum sample.
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', -1, 64)
}
