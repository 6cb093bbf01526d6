package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	goCSRF "github.com/dualtoken/goCSRF"
	"github.com/dualtoken/goCSRF/metrics/export/internaldefs"
)

const contentType = "text/plain; version=0.0.4; charset=utf-8"

type metricsSource interface {
	MetricsSnapshot() goCSRF.MetricsSnapshot
}

// PrometheusExporter renders engine metrics in Prometheus text exposition
// format. Every sample carries a backend label so several engines can be
// scraped side by side.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [goCSRF.Engine].
func NewPrometheusExporter(engine *goCSRF.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from any
// value exposing MetricsSnapshot.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves the current exposition.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render returns the exposition text, or "" when metrics are disabled.
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 {
		return ""
	}

	w := expositionWriter{backend: internaldefs.BackendLabel(snapshot)}
	w.b.Grow(4096)

	for _, def := range internaldefs.CounterDefs {
		w.header(def.Name, def.Help, "counter")
		w.sample(def.Name, strconv.FormatUint(snapshot.Counters[def.ID], 10))
	}

	reasons := internaldefs.InvalidReasons
	w.header(reasons.Name, reasons.Help, "counter")
	for _, r := range reasons.Reasons {
		w.sample(reasons.Name, strconv.FormatUint(snapshot.Counters[r.ID], 10), internaldefs.LabelReason, r.Reason)
	}

	for _, def := range internaldefs.HistogramDefs {
		raw, ok := snapshot.Histograms[def.ID]
		if !ok {
			continue
		}
		cumulative := internaldefs.CumulativeBuckets(raw)
		w.header(def.Name, def.Help, "histogram")
		for i, le := range internaldefs.HistogramBounds {
			w.sample(def.Name+"_bucket", strconv.FormatUint(cumulative[i], 10), internaldefs.LabelLE, le)
		}
		w.sample(def.Name+"_sum", internaldefs.Seconds(snapshot.HistogramSums[def.ID]))
		w.sample(def.Name+"_count", strconv.FormatUint(cumulative[len(cumulative)-1], 10))
	}

	return w.b.String()
}

// expositionWriter prefixes every sample with the backend label.
type expositionWriter struct {
	b       strings.Builder
	backend string
}

func (w *expositionWriter) header(name, help, kind string) {
	w.b.WriteString("# HELP ")
	w.b.WriteString(name)
	w.b.WriteByte(' ')
	w.b.WriteString(escapeHelp(help))
	w.b.WriteString("\n# TYPE ")
	w.b.WriteString(name)
	w.b.WriteByte(' ')
	w.b.WriteString(kind)
	w.b.WriteByte('\n')
}

// sample writes name{backend="...",k="v"...} value. extra holds key/value pairs.
func (w *expositionWriter) sample(name, value string, extra ...string) {
	w.b.WriteString(name)
	w.b.WriteString(`{`)
	w.label(internaldefs.LabelBackend, w.backend)
	for i := 0; i+1 < len(extra); i += 2 {
		w.b.WriteByte(',')
		w.label(extra[i], extra[i+1])
	}
	w.b.WriteString("} ")
	w.b.WriteString(value)
	w.b.WriteByte('\n')
}

func (w *expositionWriter) label(key, value string) {
	w.b.WriteString(key)
	w.b.WriteString(`="`)
	w.b.WriteString(escapeLabel(value))
	w.b.WriteByte('"')
}

func escapeHelp(help string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(help)
}

func escapeLabel(value string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`).Replace(value)
}
