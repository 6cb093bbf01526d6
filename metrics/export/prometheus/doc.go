// Package prometheus serves goCSRF engine metrics in the Prometheus text
// exposition format without depending on a Prometheus client library.
//
// Each family is labelled with the engine backend ("jwt" or "hmac").
// INVALID_TOKEN rejections are additionally broken down by failure class in
// gocsrf_verify_invalid_token_reasons_total{reason="..."}; the class is only
// visible here, never to callers of Verify. The latency histogram is rendered
// only when the engine records it.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate engine state.
package prometheus
