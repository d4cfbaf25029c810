package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donors"

// Report label values.
const (
	ReportZip  = "zip"
	ReportDate = "date"
)

// Metrics holds the collectors updated by the pipeline and the feed.
type Metrics struct {
	LinesRead              prometheus.Counter
	RecordsDropped         *prometheus.CounterVec
	ZipReports             prometheus.Counter
	DateReports            prometheus.Counter
	ZipKeys                prometheus.Gauge
	HistogramReallocations prometheus.Counter
	FeedDropped            prometheus.Counter
	FeedClients            prometheus.Gauge
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LinesRead: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_lines_total",
			Help:      "Total number of input lines read.",
		}),
		RecordsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Total number of input lines not used by a report.",
		}, []string{"report"}),
		ZipReports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_reports_total",
			Help:      "Total number of running median lines emitted per recipient and zip code.",
		}),
		DateReports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_reports_total",
			Help:      "Total number of batch median lines emitted per recipient and date.",
		}),
		ZipKeys: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zip_keys",
			Help:      "Number of recipient and zip code keys with a running median tracker.",
		}),
		HistogramReallocations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "histogram_reallocations_total",
			Help:      "Total number of median histogram reallocations.",
		}),
		FeedDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_messages_dropped_total",
			Help:      "Total number of live feed messages dropped for slow clients.",
		}),
		FeedClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_clients",
			Help:      "Number of connected live feed clients.",
		}),
	}
}
