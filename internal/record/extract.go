package record

import (
	"strconv"
	"strings"

	"github.com/rickgao/donor-medians/internal/config"
	"github.com/rickgao/donor-medians/internal/median"
	"github.com/rickgao/donor-medians/internal/model"
)

// Field positions in an FEC individual contributions line.
const (
	fieldCommitteeID = 0
	fieldZipCode     = 10
	fieldDate        = 13
	fieldAmount      = 14
	fieldOtherID     = 15
)

const zipLength = 5

// Result is the outcome of extracting one line.
type Result struct {
	Contribution model.Contribution

	// ForZip is set when the record feeds the running zip report.
	ForZip bool

	// ForDate is set when the record feeds the batch date report.
	ForDate bool
}

// Extractor validates raw lines.
type Extractor struct {
	minFields int
	minYear   int
	maxYear   int
	maxAmount int64
}

// NewExtractor creates an Extractor from input and validation settings.
func NewExtractor(input config.InputConfig, validation config.ValidationConfig) *Extractor {
	minFields := input.MinFields
	if minFields < config.DefaultMinFields {
		minFields = config.DefaultMinFields
	}
	maxAmount := validation.MaxAmount
	if maxAmount < 1 || maxAmount > median.MaxAmount {
		maxAmount = config.DefaultMaxAmount
	}
	return &Extractor{
		minFields: minFields,
		minYear:   validation.MinYear,
		maxYear:   validation.MaxYear,
		maxAmount: maxAmount,
	}
}

// Extract parses one line. A zero Result (both flags false) means the line
// is dropped by both reports.
func (e *Extractor) Extract(line string) Result {
	fields := strings.Split(line, "|")
	if len(fields) < e.minFields {
		return Result{}
	}

	c := model.Contribution{
		CommitteeID: fields[fieldCommitteeID],
		ZipCode:     truncate(fields[fieldZipCode], zipLength),
		Date:        fields[fieldDate],
		OtherID:     fields[fieldOtherID],
	}

	// Only individual contributions: OTHER_ID empty, required fields present.
	if c.OtherID != "" || c.CommitteeID == "" || c.Date == "" || fields[fieldAmount] == "" {
		return Result{}
	}

	amount, ok := ParseAmount(fields[fieldAmount], e.maxAmount)
	if !ok {
		return Result{}
	}
	c.Amount = amount

	return Result{
		Contribution: c,
		ForZip:       isDigits(c.ZipCode, zipLength),
		ForDate:      e.ValidDate(c.Date),
	}
}

// ValidDate reports whether date is MMDDYYYY with month in [1,12], day in
// [1,31] and a year strictly inside the configured window. Day ranges are
// not checked against the month.
func (e *Extractor) ValidDate(date string) bool {
	if !isDigits(date, 8) {
		return false
	}
	month, _ := strconv.Atoi(date[0:2])
	day, _ := strconv.Atoi(date[2:4])
	year, _ := strconv.Atoi(date[4:8])

	return month >= 1 && month <= 12 &&
		day >= 1 && day <= 31 &&
		year > e.minYear && year < e.maxYear
}

// ParseAmount parses a whole transaction amount in [0, max].
func ParseAmount(s string, max int64) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 || v > max {
		return 0, false
	}
	return v, true
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// isDigits reports whether s is exactly n ASCII digits.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
