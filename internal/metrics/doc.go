// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Input lines read and records dropped per report
//   - Zip reports and date groups emitted
//   - Tracked (recipient, zip) keys and histogram reallocations
//   - Live feed messages dropped for slow clients
package metrics
