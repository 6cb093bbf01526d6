// Package internaldefs holds the metric names, help strings and histogram
// bounds shared by the Prometheus and OTel exporters.
//
// Both exporters read these tables, so a rename here changes every exporter
// at once.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
