// Package database provides the PostgreSQL connection pool for report storage.
//
// Tables:
//   - medianvals_by_zip: one row per running median report, keyed by (run_id, seq)
//   - medianvals_by_date: one row per recipient and date, keyed by (run_id, cmte_id, transaction_dt)
package database
