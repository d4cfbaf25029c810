// Package model defines shared data types used across the donors pipeline.
//
// Conventions:
//   - Amounts: non-negative whole dollars as reported in TRANSACTION_AMT
//   - Dates: MMDDYYYY strings, kept verbatim from TRANSACTION_DT
//   - Zip codes: first five characters of ZIP_CODE
package model
