package aggregate

import (
	"slices"
	"strings"

	"github.com/rickgao/donor-medians/internal/median"
	"github.com/rickgao/donor-medians/internal/model"
)

type dateKey struct {
	committeeID string
	date        string
}

// DateAggregator collects amounts per (recipient, date) for a one-shot
// median once all contributions are in.
type DateAggregator struct {
	rounding median.Rounding
	groups   map[dateKey][]int64
}

// NewDateAggregator creates an aggregator. A nil rounding uses median.HalfEven.
func NewDateAggregator(rounding median.Rounding) *DateAggregator {
	if rounding == nil {
		rounding = median.HalfEven
	}
	return &DateAggregator{
		rounding: rounding,
		groups:   make(map[dateKey][]int64),
	}
}

// Add records one contribution.
func (a *DateAggregator) Add(c model.Contribution) {
	key := dateKey{committeeID: c.CommitteeID, date: c.Date}
	a.groups[key] = append(a.groups[key], c.Amount)
}

// Len returns the number of groups collected so far.
func (a *DateAggregator) Len() int {
	return len(a.groups)
}

// Reports sorts every group and returns one report per group, ordered by
// the concatenated recipient+date key. The collected groups are released.
func (a *DateAggregator) Reports() []model.DateReport {
	keys := make([]dateKey, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y dateKey) int {
		return strings.Compare(x.committeeID+x.date, y.committeeID+y.date)
	})

	reports := make([]model.DateReport, 0, len(keys))
	for _, k := range keys {
		amounts := a.groups[k]
		slices.Sort(amounts)

		var total int64
		for _, v := range amounts {
			total += v
		}

		reports = append(reports, model.DateReport{
			CommitteeID: k.committeeID,
			Date:        k.date,
			Median:      sortedMedian(amounts, total, a.rounding),
			Count:       int64(len(amounts)),
			Total:       total,
		})
	}

	a.groups = make(map[dateKey][]int64)
	return reports
}

// sortedMedian returns the median of sorted, non-empty amounts.
func sortedMedian(sorted []int64, total int64, rounding median.Rounding) int64 {
	n := len(sorted)
	switch {
	case n == 1:
		return sorted[0]
	case n == 2:
		return rounding(total, 2)
	case n%2 == 0:
		return rounding(sorted[n/2-1]+sorted[n/2], 2)
	default:
		return sorted[n/2]
	}
}
