// Package aggregate groups contributions into the two donor reports.
//
//   - ZipProcessor: one running median tracker per (recipient, zip), one
//     report per contribution in arrival order
//   - DateAggregator: amounts collected per (recipient, date), sorted and
//     reduced once after the input is exhausted
package aggregate
