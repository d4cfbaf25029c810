package model

import (
	"strconv"
	"strings"
)

// Contribution is one validated individual contribution record.
type Contribution struct {
	CommitteeID string // CMTE_ID, the recipient
	ZipCode     string // First five characters of ZIP_CODE
	Date        string // TRANSACTION_DT (MMDDYYYY)
	Amount      int64  // TRANSACTION_AMT
	OtherID     string // OTHER_ID, always empty for individual contributions
}

// ZipReport is one running-median line, emitted per contribution in input order.
type ZipReport struct {
	Seq         int64 // 1-based position among emitted zip reports
	CommitteeID string
	ZipCode     string
	Median      int64
	Count       int64
	Total       int64
}

// Line formats the report as CMTE_ID|ZIP|median|count|total.
func (r ZipReport) Line() string {
	return joinLine(r.CommitteeID, r.ZipCode, r.Median, r.Count, r.Total)
}

// DateReport is one batch-median line per recipient and transaction date.
type DateReport struct {
	CommitteeID string
	Date        string
	Median      int64
	Count       int64
	Total       int64
}

// Line formats the report as CMTE_ID|DATE|median|count|total.
func (r DateReport) Line() string {
	return joinLine(r.CommitteeID, r.Date, r.Median, r.Count, r.Total)
}

func joinLine(id, key string, median, count, total int64) string {
	var b strings.Builder
	b.WriteString(id)
	b.WriteByte('|')
	b.WriteString(key)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(median, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(count, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(total, 10))
	return b.String()
}
