// Package jwt signs and verifies pair tokens as HMAC-signed JSON Web Tokens
// using a shared symmetric secret.
//
// [Manager] is the structured, self-describing backend of goCSRF: every token
// carries a header naming its algorithm, the claims payload, and a signature.
// Verification pins the algorithm, decodes segments strictly, and re-checks
// expiry against the wall clock after the library's own validation.
//
// # What this package must NOT do
//
//   - Compare header and cookie tokens (the engine owns pair checks).
//   - Accept tokens signed with any algorithm other than the configured one.
package jwt
