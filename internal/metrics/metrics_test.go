package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.LinesRead.Add(3)
	m.RecordsDropped.WithLabelValues(ReportZip).Inc()
	m.RecordsDropped.WithLabelValues(ReportDate).Add(2)
	m.ZipKeys.Set(5)

	if got := testutil.ToFloat64(m.LinesRead); got != 3 {
		t.Errorf("LinesRead = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.RecordsDropped.WithLabelValues(ReportDate)); got != 2 {
		t.Errorf("RecordsDropped{report=date} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ZipKeys); got != 5 {
		t.Errorf("ZipKeys = %v, want 5", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Error("Gather() returned no metric families")
	}
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	defer func() {
		if recover() == nil {
			t.Error("second New on the same registry did not panic")
		}
	}()
	New(reg)
}
