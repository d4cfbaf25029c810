package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/donor-medians/internal/aggregate"
	"github.com/rickgao/donor-medians/internal/median"
	"github.com/rickgao/donor-medians/internal/metrics"
	"github.com/rickgao/donor-medians/internal/model"
	"github.com/rickgao/donor-medians/internal/record"
)

// ZipSink receives running median reports in input order.
type ZipSink interface {
	WriteZip(ctx context.Context, r model.ZipReport) error
}

// DateSink receives the complete, sorted batch report once.
type DateSink interface {
	WriteDates(ctx context.Context, reports []model.DateReport) error
}

// Config holds pipeline settings.
type Config struct {
	RunID        uuid.UUID
	QueueSize    int
	DrainSize    int
	MaxLineBytes int
	Rounding     median.Rounding // Batch report rounding; nil means median.HalfEven
}

// Result summarizes a finished run.
type Result struct {
	RunID       uuid.UUID
	LinesRead   int64
	ZipReports  int64
	DateRecords int64
	DateReports int
	ZipKeys     int
	Duration    time.Duration
}

// Pipeline wires the extractor, the two aggregators and the sinks.
// A Pipeline runs once.
type Pipeline struct {
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	extractor *record.Extractor

	zipSinks  []ZipSink
	dateSinks []DateSink

	// Progress, readable while Run is in flight.
	linesRead   atomic.Int64
	zipReports  atomic.Int64
	dateRecords atomic.Int64
}

// New creates a pipeline. m must not be nil.
func New(cfg Config, extractor *record.Extractor, m *metrics.Metrics, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RunID == uuid.Nil {
		cfg.RunID = uuid.New()
	}
	return &Pipeline{
		cfg:       cfg,
		logger:    logger.With("run_id", cfg.RunID),
		metrics:   m,
		extractor: extractor,
	}
}

// AddZipSink registers a sink for running median reports.
func (p *Pipeline) AddZipSink(s ZipSink) {
	p.zipSinks = append(p.zipSinks, s)
}

// AddDateSink registers a sink for the batch report.
func (p *Pipeline) AddDateSink(s DateSink) {
	p.dateSinks = append(p.dateSinks, s)
}

// RunID returns the identifier of this run.
func (p *Pipeline) RunID() uuid.UUID {
	return p.cfg.RunID
}

// Progress returns counters for the run so far.
func (p *Pipeline) Progress() Result {
	return Result{
		RunID:       p.cfg.RunID,
		LinesRead:   p.linesRead.Load(),
		ZipReports:  p.zipReports.Load(),
		DateRecords: p.dateRecords.Load(),
	}
}

// Run reads r to the end and emits both reports.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Result, error) {
	start := time.Now()

	zipQueue := NewQueue[model.Contribution](p.cfg.QueueSize)
	dateQueue := NewQueue[model.Contribution](p.cfg.QueueSize)

	zip := aggregate.NewZipProcessor()
	date := aggregate.NewDateAggregator(p.cfg.Rounding)
	var dateReports int

	g, gctx := errgroup.WithContext(ctx)

	// Unblock consumers when the run is cancelled.
	stop := context.AfterFunc(gctx, func() {
		zipQueue.Close()
		dateQueue.Close()
	})
	defer stop()

	g.Go(func() error {
		defer zipQueue.Close()
		defer dateQueue.Close()
		return p.read(gctx, r, zipQueue, dateQueue)
	})

	g.Go(func() error {
		return p.consumeZip(gctx, zipQueue, zip)
	})

	g.Go(func() error {
		n, err := p.consumeDate(gctx, dateQueue, date)
		dateReports = n
		return err
	})

	err := g.Wait()

	stats := zip.Stats()
	res := p.Progress()
	res.ZipKeys = stats.Keys
	res.DateReports = dateReports
	res.Duration = time.Since(start)

	if err != nil {
		return res, err
	}

	p.logger.Info("run complete",
		"lines", res.LinesRead,
		"zip_reports", res.ZipReports,
		"zip_keys", res.ZipKeys,
		"date_reports", res.DateReports,
		"reallocations", stats.Reallocations,
		"zip_queue_peak", zipQueue.Stats().Peak,
		"duration", res.Duration,
	)
	return res, nil
}

// read scans lines, extracts records and routes them to the queues.
func (p *Pipeline) read(ctx context.Context, r io.Reader, zipQueue, dateQueue *Queue[model.Contribution]) error {
	scanner := bufio.NewScanner(r)
	maxLine := p.cfg.MaxLineBytes
	if maxLine <= 0 {
		maxLine = bufio.MaxScanTokenSize
	}
	scanner.Buffer(make([]byte, 0, min(maxLine, 64*1024)), maxLine)

	var lineNo int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		p.linesRead.Add(1)
		p.metrics.LinesRead.Inc()

		res := p.extractor.Extract(scanner.Text())

		if res.ForZip {
			zipQueue.Push(res.Contribution)
		} else {
			p.metrics.RecordsDropped.WithLabelValues(metrics.ReportZip).Inc()
		}
		if res.ForDate {
			dateQueue.Push(res.Contribution)
		} else {
			p.metrics.RecordsDropped.WithLabelValues(metrics.ReportDate).Inc()
		}

		if !res.ForZip || !res.ForDate {
			p.logger.Debug("record dropped",
				"line", lineNo,
				"zip", res.ForZip,
				"date", res.ForDate,
			)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input line %d: %w", lineNo+1, err)
	}
	return nil
}

// consumeZip feeds the running median processor in queue order.
func (p *Pipeline) consumeZip(ctx context.Context, q *Queue[model.Contribution], zip *aggregate.ZipProcessor) error {
	var reallocs int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, ok := q.Pop()
		if !ok {
			return ctx.Err()
		}

		report := zip.Update(c)
		for _, s := range p.zipSinks {
			if err := s.WriteZip(ctx, report); err != nil {
				return fmt.Errorf("write zip report %d: %w", report.Seq, err)
			}
		}

		stats := zip.Stats()
		p.zipReports.Add(1)
		p.metrics.ZipReports.Inc()
		p.metrics.ZipKeys.Set(float64(stats.Keys))
		p.metrics.HistogramReallocations.Add(float64(stats.Reallocations - reallocs))
		reallocs = stats.Reallocations
	}
}

// consumeDate collects records until the queue closes, then emits the batch report.
func (p *Pipeline) consumeDate(ctx context.Context, q *Queue[model.Contribution], date *aggregate.DateAggregator) (int, error) {
	drain := p.cfg.DrainSize
	for {
		batch := q.PopBatch(drain)
		if batch == nil {
			break
		}
		for _, c := range batch {
			date.Add(c)
		}
		p.dateRecords.Add(int64(len(batch)))
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	reports := date.Reports()
	for _, s := range p.dateSinks {
		if err := s.WriteDates(ctx, reports); err != nil {
			return 0, fmt.Errorf("write date reports: %w", err)
		}
	}
	p.metrics.DateReports.Add(float64(len(reports)))
	return len(reports), nil
}
