// Package middleware provides net/http helpers that put a goCSRF engine in
// front of HTTP handlers.
//
//   - [Issue] mints a token pair, stores the cookie token and returns the
//     header token to the client.
//   - [Protect] verifies the header and cookie tokens on unsafe methods.
//   - [FromContext] returns the verified pair inside protected handlers.
//
// The middleware holds no state of its own. Every accept or reject decision
// is delegated to the engine's Verify.
package middleware
