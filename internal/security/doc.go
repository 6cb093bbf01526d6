// Package security builds the configuration posture report exposed by
// Engine.SecurityReport.
//
// # What this package must NOT do
//
//   - Read secrets beyond their length.
//   - Import goCSRF (the root package converts its config into ReportInput).
package security
