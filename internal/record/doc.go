// Package record extracts contributions from FEC individual contribution lines.
//
// A line is split on '|'. Only CMTE_ID (0), ZIP_CODE (10), TRANSACTION_DT (13),
// TRANSACTION_AMT (14) and OTHER_ID (15) are read. Lines that fail validation
// are dropped without error; the Result says which report, if any, may use it.
package record
