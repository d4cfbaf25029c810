package aggregate

import (
	"github.com/rickgao/donor-medians/internal/median"
	"github.com/rickgao/donor-medians/internal/model"
)

type zipKey struct {
	committeeID string
	zipCode     string
}

// ZipStats contains processor statistics.
type ZipStats struct {
	Keys          int
	Records       int64
	Reallocations int64
}

// ZipProcessor owns the running median state for every (recipient, zip) key.
// Trackers are created on the first contribution for a key and live as long
// as the processor. Not safe for concurrent use.
type ZipProcessor struct {
	trackers map[zipKey]*median.Tracker
	seq      int64
	reallocs int64
}

// NewZipProcessor creates an empty processor.
func NewZipProcessor() *ZipProcessor {
	return &ZipProcessor{trackers: make(map[zipKey]*median.Tracker)}
}

// Update feeds one contribution to the tracker for its key and returns the
// running report for that key.
func (p *ZipProcessor) Update(c model.Contribution) model.ZipReport {
	key := zipKey{committeeID: c.CommitteeID, zipCode: c.ZipCode}
	tr, ok := p.trackers[key]
	if !ok {
		tr = &median.Tracker{}
		p.trackers[key] = tr
	}

	before := tr.Reallocations()
	s := tr.Insert(c.Amount)
	p.reallocs += int64(tr.Reallocations() - before)
	p.seq++

	return model.ZipReport{
		Seq:         p.seq,
		CommitteeID: c.CommitteeID,
		ZipCode:     c.ZipCode,
		Median:      s.Median,
		Count:       s.Count,
		Total:       s.Total,
	}
}

// Stats returns current statistics.
func (p *ZipProcessor) Stats() ZipStats {
	return ZipStats{
		Keys:          len(p.trackers),
		Records:       p.seq,
		Reallocations: p.reallocs,
	}
}
