package writer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/donor-medians/internal/model"
)

var _ DB = (*fakeDB)(nil)

// fakeDB records batches. Every conflictEvery-th row reports zero rows affected.
type fakeDB struct {
	mu            sync.Mutex
	batches       []*pgx.Batch
	conflictEvery int
	execErr       error
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, b)
	return &fakeResults{conflictEvery: f.conflictEvery, err: f.execErr}
}

func (f *fakeDB) rows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += b.Len()
	}
	return n
}

type fakeResults struct {
	pgx.BatchResults
	conflictEvery int
	err           error
	calls         int
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	r.calls++
	if r.conflictEvery > 0 && r.calls%r.conflictEvery == 0 {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeResults) Close() error { return nil }

func TestDBWriter_ZipBatching(t *testing.T) {
	db := &fakeDB{}
	runID := uuid.New()
	w := NewDBWriter(db, runID, 3, nil)
	ctx := context.Background()

	for i := int64(1); i <= 7; i++ {
		if err := w.WriteZip(ctx, model.ZipReport{Seq: i, CommitteeID: "C1", ZipCode: "10001", Median: i, Count: i, Total: i}); err != nil {
			t.Fatalf("WriteZip(%d) error = %v", i, err)
		}
	}

	if len(db.batches) != 2 {
		t.Errorf("batches before flush = %d, want 2", len(db.batches))
	}

	if err := w.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if db.rows() != 7 {
		t.Errorf("rows = %d, want 7", db.rows())
	}

	first := db.batches[0].QueuedQueries[0]
	if first.Arguments[0] != runID {
		t.Errorf("run_id argument = %v, want %v", first.Arguments[0], runID)
	}
	if first.Arguments[1] != int64(1) {
		t.Errorf("seq argument = %v, want 1", first.Arguments[1])
	}

	stats := w.Stats()
	if stats.Inserts != 7 || stats.Flushes != 3 {
		t.Errorf("Stats() = %+v, want 7 inserts over 3 flushes", stats)
	}

	// Nothing buffered: no new batch
	w.Flush(ctx)
	if len(db.batches) != 3 {
		t.Errorf("batches after empty flush = %d, want 3", len(db.batches))
	}
}

func TestDBWriter_DateChunks(t *testing.T) {
	db := &fakeDB{conflictEvery: 2}
	w := NewDBWriter(db, uuid.New(), 2, nil)

	reports := []model.DateReport{
		{CommitteeID: "C1", Date: "01012017", Median: 1, Count: 1, Total: 1},
		{CommitteeID: "C1", Date: "01022017", Median: 2, Count: 1, Total: 2},
		{CommitteeID: "C2", Date: "01012017", Median: 3, Count: 1, Total: 3},
	}
	if err := w.WriteDates(context.Background(), reports); err != nil {
		t.Fatalf("WriteDates() error = %v", err)
	}

	if len(db.batches) != 2 {
		t.Errorf("batches = %d, want 2", len(db.batches))
	}
	stats := w.Stats()
	if stats.Inserts != 2 || stats.Conflicts != 1 {
		t.Errorf("Stats() = %+v, want 2 inserts and 1 conflict", stats)
	}
}

func TestDBWriter_ExecError(t *testing.T) {
	execErr := errors.New("relation does not exist")
	db := &fakeDB{execErr: execErr}
	w := NewDBWriter(db, uuid.New(), 1, nil)

	err := w.WriteZip(context.Background(), model.ZipReport{Seq: 1})
	if !errors.Is(err, execErr) {
		t.Fatalf("WriteZip() error = %v, want %v", err, execErr)
	}
	if w.Stats().Errors != 1 {
		t.Errorf("Errors = %d, want 1", w.Stats().Errors)
	}
}
