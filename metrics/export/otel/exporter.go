package otel

import (
	"context"
	"errors"
	"fmt"

	goCSRF "github.com/dualtoken/goCSRF"
	"github.com/dualtoken/goCSRF/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goCSRF.MetricsSnapshot
}

type observedCounter struct {
	id         goCSRF.MetricID
	instrument metric.Int64ObservableCounter
}

// observedHistogram exposes one engine histogram as cumulative bucket gauges
// keyed by an le attribute, plus count and sum.
type observedHistogram struct {
	id      goCSRF.MetricID
	buckets metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
	sum     metric.Float64ObservableGauge
}

// OTelExporter keeps the instrument registration alive until Close.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
	reasons      metric.Int64ObservableCounter
	histograms   []observedHistogram
}

// NewOTelExporter registers instruments on meter that read from engine.
// Every observation carries the engine's backend attribute.
func NewOTelExporter(meter metric.Meter, engine *goCSRF.Engine) (*OTelExporter, error) {
	if engine == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource is NewOTelExporter for any snapshot source.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &OTelExporter{source: source}
	var observables []metric.Observable

	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", def.Name, err)
		}
		e.counters = append(e.counters, observedCounter{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}

	reasons, err := meter.Int64ObservableCounter(internaldefs.InvalidReasons.Name,
		metric.WithDescription(internaldefs.InvalidReasons.Help))
	if err != nil {
		return nil, fmt.Errorf("create counter %s: %w", internaldefs.InvalidReasons.Name, err)
	}
	e.reasons = reasons
	observables = append(observables, reasons)

	for _, def := range internaldefs.HistogramDefs {
		h, err := newObservedHistogram(meter, def)
		if err != nil {
			return nil, err
		}
		e.histograms = append(e.histograms, h)
		observables = append(observables, h.buckets, h.count, h.sum)
	}

	registration, err := meter.RegisterCallback(e.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	e.registration = registration
	return e, nil
}

func newObservedHistogram(meter metric.Meter, def internaldefs.HistogramDef) (observedHistogram, error) {
	h := observedHistogram{id: def.ID}
	var err error
	if h.buckets, err = meter.Int64ObservableGauge(def.Name+"_bucket",
		metric.WithDescription(def.Help+" Cumulative count per le bound.")); err != nil {
		return h, fmt.Errorf("create gauge %s_bucket: %w", def.Name, err)
	}
	if h.count, err = meter.Int64ObservableGauge(def.Name+"_count",
		metric.WithDescription(def.Help+" Sample count.")); err != nil {
		return h, fmt.Errorf("create gauge %s_count: %w", def.Name, err)
	}
	if h.sum, err = meter.Float64ObservableGauge(def.Name+"_sum",
		metric.WithDescription(def.Help+" Total observed time."), metric.WithUnit("s")); err != nil {
		return h, fmt.Errorf("create gauge %s_sum: %w", def.Name, err)
	}
	return h, nil
}

func (e *OTelExporter) observe(_ context.Context, o metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 {
		return nil
	}

	backend := attribute.String(internaldefs.LabelBackend, internaldefs.BackendLabel(snapshot))
	withBackend := metric.WithAttributes(backend)

	for _, c := range e.counters {
		o.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]), withBackend)
	}
	for _, r := range internaldefs.InvalidReasons.Reasons {
		o.ObserveInt64(e.reasons, int64(snapshot.Counters[r.ID]),
			metric.WithAttributes(backend, attribute.String(internaldefs.LabelReason, r.Reason)))
	}

	for _, h := range e.histograms {
		raw, ok := snapshot.Histograms[h.id]
		if !ok {
			continue
		}
		cumulative := internaldefs.CumulativeBuckets(raw)
		for i, le := range internaldefs.HistogramBounds {
			o.ObserveInt64(h.buckets, int64(cumulative[i]),
				metric.WithAttributes(backend, attribute.String(internaldefs.LabelLE, le)))
		}
		o.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]), withBackend)
		o.ObserveFloat64(h.sum, snapshot.HistogramSums[h.id].Seconds(), withBackend)
	}
	return nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
