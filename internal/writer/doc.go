// Package writer implements the report sinks.
//
// Writers:
//   - LineWriter: pipe-delimited report files (medianvals_by_zip.txt, medianvals_by_date.txt)
//   - DBWriter: PostgreSQL tables medianvals_by_zip and medianvals_by_date
//
// All writers use append-only semantics. Database rows carry the run id so
// several runs can share the same tables.
package writer
