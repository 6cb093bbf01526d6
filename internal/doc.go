// Package internal contains helper utilities that are intentionally private to goCSRF,
// chiefly secure random generation for the built-in identifier strategies.
//
// # Sub-packages
//
//   - security: configuration posture report backing Engine.SecurityReport
//
// # What this package must NOT do
//
//   - Export types that appear in the public goCSRF API.
//   - Be imported by any package outside the goCSRF module.
package internal
