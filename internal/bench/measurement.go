package bench

import (
	"fmt"
	"sort"
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// Measurement keeps one latency histogram per operation, in microseconds.
type Measurement struct {
	mu    sync.Mutex
	hists map[string]*hdrhistogram.Histogram
}

func NewMeasurement() *Measurement {
	return &Measurement{hists: map[string]*hdrhistogram.Histogram{}}
}

func (m *Measurement) Measure(op string, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hists[op]
	if !ok {
		h = hdrhistogram.New(1, 24*60*60*1000*1000, 3)
		m.hists[op] = h
	}
	us := latency.Microseconds()
	if us < 1 {
		us = 1
	}
	_ = h.RecordValue(us)
}

// Time runs fn, records its latency under op and returns it.
func (m *Measurement) Time(op string, fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	if err == nil {
		m.Measure(op, d)
	}
	return d, err
}

var summaryHeader = []string{"Operation", "Count", "Avg(us)", "Min(us)", "Max(us)", "99th(us)", "99.9th(us)"}

// Summary returns one row per operation sorted by name.
func (m *Measurement) Summary() (header []string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]string, 0, len(m.hists))
	for op := range m.hists {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		h := m.hists[op]
		rows = append(rows, []string{
			op,
			fmt.Sprintf("%d", h.TotalCount()),
			fmt.Sprintf("%d", int64(h.Mean())),
			fmt.Sprintf("%d", h.Min()),
			fmt.Sprintf("%d", h.Max()),
			fmt.Sprintf("%d", h.ValueAtPercentile(99)),
			fmt.Sprintf("%d", h.ValueAtPercentile(99.9)),
		})
	}
	return summaryHeader, rows
}
