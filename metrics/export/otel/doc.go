// Package otel binds goCSRF engine metrics to OpenTelemetry observable instruments.
//
// [NewOTelExporter] registers one Int64ObservableCounter per engine counter,
// a reasons counter for the INVALID_TOKEN failure classes, and bucket, count
// and sum gauges for the Verify latency histogram. A single callback reads
// [goCSRF.Engine.MetricsSnapshot] on each collection cycle and tags every
// observation with a backend attribute ("jwt" or "hmac").
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider. Callers supply the Meter.
//   - Mutate engine state.
package otel
