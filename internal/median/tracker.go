package median

import "fmt"

// MaxAmount is the largest amount a Tracker accepts. Histograms are indexed
// by amount, and the running total of 2^31 such amounts still fits in an int64.
const MaxAmount int64 = 1 << 32

// Stats is the state reported after each insertion.
type Stats struct {
	Median int64
	Count  int64
	Total  int64
}

// Tracker maintains the exact median, count and sum of the amounts inserted
// so far. The zero value is ready to use. A Tracker is not safe for
// concurrent use.
type Tracker struct {
	lower lowerHistogram
	upper upperHistogram

	// median is the last reported median. While count is odd it is also the
	// middle element, held outside both histograms.
	median int64
	count  int64
	total  int64
}

// Insert adds amount and returns the updated median, count and total.
// It panics if amount is negative or above MaxAmount.
func (t *Tracker) Insert(amount int64) Stats {
	if amount < 0 || amount > MaxAmount {
		panic(fmt.Sprintf("median: amount %d outside [0, %d]", amount, MaxAmount))
	}

	t.count++
	t.total += amount

	switch {
	case t.count == 1:
		t.median = amount
	case t.count%2 == 0:
		// The held median and the new amount go to opposite sides.
		lo, hi := t.median, amount
		if amount <= t.median {
			lo, hi = amount, t.median
		}
		t.lower.add(lo)
		t.upper.add(hi)
		t.median = midpoint(t.lower.top(), t.upper.bottom())
	default:
		switch {
		case amount <= t.lower.top():
			t.lower.add(amount)
			t.median = t.lower.popTop()
		case amount >= t.upper.bottom():
			t.upper.add(amount)
			t.median = t.upper.popBottom()
		default:
			t.median = amount
		}
	}

	return t.Stats()
}

// Stats returns the current median, count and total without inserting.
func (t *Tracker) Stats() Stats {
	return Stats{Median: t.median, Count: t.count, Total: t.total}
}

// Reallocations returns how many times either histogram was reallocated.
func (t *Tracker) Reallocations() int {
	return t.lower.reallocs + t.upper.reallocs
}
