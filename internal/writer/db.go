package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rickgao/donor-medians/internal/model"
)

const insertZipSQL = `
	INSERT INTO medianvals_by_zip (run_id, seq, cmte_id, zip_code, median, count, total)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (run_id, seq) DO NOTHING
`

const insertDateSQL = `
	INSERT INTO medianvals_by_date (run_id, cmte_id, transaction_dt, median, count, total)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (run_id, cmte_id, transaction_dt) DO NOTHING
`

// DBWriter stores both reports in PostgreSQL. Zip reports are buffered and
// flushed every batchSize rows; date reports are inserted in batchSize chunks.
// Safe for use by the zip and date consumers at the same time.
type DBWriter struct {
	db        DB
	runID     uuid.UUID
	batchSize int
	logger    *slog.Logger

	zipMu sync.Mutex
	batch []model.ZipReport

	metricsMu sync.Mutex
	metrics   WriterMetrics
}

// NewDBWriter creates a DBWriter for one run.
func NewDBWriter(db DB, runID uuid.UUID, batchSize int, logger *slog.Logger) *DBWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &DBWriter{
		db:        db,
		runID:     runID,
		batchSize: batchSize,
		logger:    logger,
		batch:     make([]model.ZipReport, 0, batchSize),
	}
}

// WriteZip buffers one running report, flushing when the batch is full.
func (w *DBWriter) WriteZip(ctx context.Context, r model.ZipReport) error {
	w.zipMu.Lock()
	w.batch = append(w.batch, r)
	full := len(w.batch) >= w.batchSize
	w.zipMu.Unlock()

	if full {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered zip reports.
func (w *DBWriter) Flush(ctx context.Context) error {
	w.zipMu.Lock()
	if len(w.batch) == 0 {
		w.zipMu.Unlock()
		return nil
	}
	// Take ownership of current batch
	rows := w.batch
	w.batch = make([]model.ZipReport, 0, w.batchSize)
	w.zipMu.Unlock()

	start := time.Now()
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(insertZipSQL, w.runID, r.Seq, r.CommitteeID, r.ZipCode, r.Median, r.Count, r.Total)
	}

	conflicts, err := w.send(ctx, b)
	if err != nil {
		w.logger.Error("zip batch insert failed", "error", err, "count", len(rows))
		return fmt.Errorf("insert zip reports: %w", err)
	}

	w.logger.Debug("flushed zip reports",
		"count", len(rows),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
	return nil
}

// WriteDates inserts the batch report.
func (w *DBWriter) WriteDates(ctx context.Context, reports []model.DateReport) error {
	for start := 0; start < len(reports); start += w.batchSize {
		end := min(start+w.batchSize, len(reports))

		b := &pgx.Batch{}
		for _, r := range reports[start:end] {
			b.Queue(insertDateSQL, w.runID, r.CommitteeID, r.Date, r.Median, r.Count, r.Total)
		}

		if _, err := w.send(ctx, b); err != nil {
			w.logger.Error("date batch insert failed", "error", err, "count", end-start)
			return fmt.Errorf("insert date reports: %w", err)
		}
	}
	return nil
}

// Stats returns current metrics.
func (w *DBWriter) Stats() WriterMetrics {
	w.metricsMu.Lock()
	defer w.metricsMu.Unlock()
	return w.metrics
}

// send executes a batch of ON CONFLICT DO NOTHING inserts and counts the
// rows that already existed.
func (w *DBWriter) send(ctx context.Context, b *pgx.Batch) (conflicts int, err error) {
	n := b.Len()
	results := w.db.SendBatch(ctx, b)

	for i := 0; i < n; i++ {
		ct, execErr := results.Exec()
		if execErr != nil {
			err = execErr
			break
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}
	if closeErr := results.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	w.metricsMu.Lock()
	defer w.metricsMu.Unlock()
	if err != nil {
		w.metrics.Errors++
		return 0, err
	}
	w.metrics.Inserts += int64(n - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	return conflicts, nil
}
