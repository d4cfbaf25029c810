package writer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rickgao/donor-medians/internal/model"
)

// LineWriter writes one report per line. Lines are separated by '\n'; the
// last line is only terminated when trailingNewline is set.
type LineWriter struct {
	w               *bufio.Writer
	closer          io.Closer
	trailingNewline bool
	lines           int64
	closed          bool
}

// NewLineWriter wraps w. If w is an io.Closer it is closed by Close.
func NewLineWriter(w io.Writer, trailingNewline bool) *LineWriter {
	lw := &LineWriter{
		w:               bufio.NewWriter(w),
		trailingNewline: trailingNewline,
	}
	if c, ok := w.(io.Closer); ok {
		lw.closer = c
	}
	return lw
}

// CreateFile creates (or truncates) path, making parent directories as needed.
func CreateFile(path string, trailingNewline bool) (*LineWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return NewLineWriter(f, trailingNewline), nil
}

// WriteLine appends one line.
func (lw *LineWriter) WriteLine(line string) error {
	if lw.lines > 0 {
		if err := lw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := lw.w.WriteString(line); err != nil {
		return err
	}
	lw.lines++
	return nil
}

// WriteZip implements the running report sink.
func (lw *LineWriter) WriteZip(_ context.Context, r model.ZipReport) error {
	return lw.WriteLine(r.Line())
}

// WriteDates implements the batch report sink.
func (lw *LineWriter) WriteDates(_ context.Context, reports []model.DateReport) error {
	for _, r := range reports {
		if err := lw.WriteLine(r.Line()); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the number of lines written.
func (lw *LineWriter) Lines() int64 {
	return lw.lines
}

// Close flushes buffered output and closes the underlying writer.
// Calls after the first are no-ops.
func (lw *LineWriter) Close() error {
	if lw.closed {
		return nil
	}
	lw.closed = true
	if lw.trailingNewline && lw.lines > 0 {
		if err := lw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := lw.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if lw.closer != nil {
		return lw.closer.Close()
	}
	return nil
}
