package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Report writes benchmark results to a file and mirrors every line to out.
type Report struct {
	w io.Writer
	f *os.File
}

// NewReport truncates path and writes the timestamped header.
func NewReport(path string, out io.Writer, now time.Time) (*Report, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	r := &Report{w: io.MultiWriter(f, out), f: f}
	if _, err := fmt.Fprintf(r.w, "=== Store benchmark report ===\nDate: %s\n\n", now.Format(time.RFC3339)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return r, nil
}

// NewWriterReport reports to w only.
func NewWriterReport(w io.Writer) *Report { return &Report{w: w} }

func (r *Report) Logf(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *Report) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	tb := tablewriter.NewWriter(r.w)
	tb.SetHeader(header)
	tb.AppendBulk(rows)
	tb.Render()
}

func (r *Report) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
