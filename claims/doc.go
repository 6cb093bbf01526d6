// Package claims defines the logical payload signed into every token of a
// header/cookie pair.
//
// Both signing backends (jwt and hmactoken) encode the same [Claims] value
// into their own wire format. The shared identifier (UUID) binds the two
// tokens of one pair; the [Purpose] tag pins each token to its slot.
//
// # What this package must NOT do
//
//   - Sign, encode, or verify tokens.
//   - Import goCSRF or any backend package.
package claims
