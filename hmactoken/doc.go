// Package hmactoken implements the compact keyed-hash backend of goCSRF.
//
// Token format (canonical wire format):
//
//	base64url(payload) "." base64url(HMAC-SHA256(secret, payload))
//
// Both fields use the unpadded URL-safe alphabet, which never contains ".",
// so the split is unambiguous. Decoding is strict: a field whose trailing
// bits are not zero is rejected, which keeps the encoding one-to-one. The
// payload is JSON with the keys uuid, purpose, iat and exp (unix
// milliseconds) and an optional ext object carrying caller fields.
//
// There is no algorithm or type header; the format trades self-description
// for size. Tokens produced here never parse as JWTs and vice versa.
package hmactoken
