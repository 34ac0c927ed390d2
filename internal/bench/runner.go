package bench

import (
	"context"
	"time"

	"projects-service/internal/domain"

	"go.uber.org/zap"
)

// Run is what every backend receives: the dataset and the sinks for results.
type Run struct {
	Logs      []domain.ActivityLog
	ProjectID int
	Report    *Report
	Measure   *Measurement
}

type Backend interface {
	Name() string
	Run(ctx context.Context, run *Run) error
}

// Runner executes backends one after another. A failing backend is reported
// and the next one still runs.
type Runner struct {
	Backends []Backend
	Report   *Report
	Measure  *Measurement
	Log      *zap.Logger
}

// Result holds the error of each backend that failed, by name.
type Result struct {
	Failed map[string]error
}

func (r *Runner) Execute(ctx context.Context, logs []domain.ActivityLog, projectID int) Result {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	res := Result{Failed: map[string]error{}}
	run := &Run{Logs: logs, ProjectID: projectID, Report: r.Report, Measure: r.Measure}

	r.Report.Logf("=== SQL vs NoSQL benchmark (%d records) ===", len(logs))
	r.Report.Logf("Target project_id=%d owns %d records.", projectID, CountForProject(logs, projectID))
	for i, b := range r.Backends {
		if err := ctx.Err(); err != nil {
			res.Failed[b.Name()] = err
			r.Report.Logf("\n--- %d. %s skipped: %v ---", i+1, b.Name(), err)
			continue
		}
		r.Report.Logf("\n--- %d. %s ---", i+1, b.Name())
		start := time.Now()
		if err := b.Run(ctx, run); err != nil {
			res.Failed[b.Name()] = err
			r.Report.Logf("%s error: %v", b.Name(), err)
			log.Warn("bench.backend_failed", zap.String("backend", b.Name()), zap.Error(err))
			continue
		}
		log.Info("bench.backend_done", zap.String("backend", b.Name()), zap.Duration("took", time.Since(start)))
	}

	r.Report.Logf("\n--- Summary ---")
	r.Report.Table(r.Measure.Summary())
	r.Report.Logf("\nBenchmark finished.")
	return res
}
