// Package goCSRF provides a stateless dual-token engine for the double-submit
// CSRF defense: every request must present a header token and a cookie token
// that both verify and share one identifier.
//
// [Engine] issues pairs with [Engine.Create] and checks them with
// [Engine.Verify]. Two signing backends satisfy the same contract and are
// selected at construction through [Config.Backend]:
//
//   - [BackendJWT]: self-describing HMAC-signed JWTs (package jwt).
//   - [BackendHMAC]: compact base64url payload plus HMAC-SHA256 tag (package hmactoken).
//
// Identifiers come from a built-in strategy ([IDStrategySimple],
// [IDStrategyUUID]) or a caller-supplied [IDGenerator], resolved once at
// construction.
//
// # Architecture boundaries
//
// goCSRF is the public surface. It exposes [Engine], [Builder], [Config], and
// value types ([TokenPair], [VerifiedPair], [MetricsSnapshot]). Token encoding
// lives in the backend packages; HTTP plumbing lives in package middleware.
//
// # What this package must NOT do
//
//   - Perform I/O, log, or retain state between calls.
//   - Surface any Verify failure other than [ErrMissingToken] or [ErrInvalidToken].
//   - Trust token payload content before the signature has been checked.
//
// # Concurrency
//
// An Engine is immutable after construction. Create and Verify never block
// and are safe to call from multiple goroutines.
package goCSRF
