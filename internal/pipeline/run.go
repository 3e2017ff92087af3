package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned when Run is called while another run owns
// the pipeline.
var ErrRunInProgress = errors.New("a validation run is already in progress")

// Run executes one validation pass over the configured range and blocks
// until the pipeline drains. The run ends Completed when the range is
// exhausted, Interrupted when ctx is cancelled, or Failed on an
// orchestration fault; in every case the final summary is reported with
// whatever metrics accumulated, and the runner returns to Idle.
func (r *Runner) Run(ctx context.Context) (snap Snapshot, err error) {
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateConfiguring)) {
		return Snapshot{}, ErrRunInProgress
	}
	defer r.setState(StateIdle)

	total := r.seq.Count()

	// Per-task failures are isolated in the stages; anything escaping to
	// here is an orchestration fault and aborts the run.
	defer func() {
		if rec := recover(); rec != nil {
			r.setState(StateFailed)
			snap = r.metrics.Snapshot()
			err = fmt.Errorf("pipeline fault: %v", rec)
			zap.S().Errorw("run aborted by unexpected fault", "panic", rec)
			r.reportSummary(StateFailed, snap, total)
		}
	}()

	if err := r.store.Reset(); err != nil {
		return Snapshot{}, err
	}
	defer func() {
		if cerr := r.store.Close(); cerr != nil {
			zap.S().Warnw("closing output store", "error", cerr)
		}
	}()

	r.metrics.Reset(time.Now())
	zap.S().Infow(
		"starting validation run",
		"range_start", r.seq.Start(),
		"range_end", r.seq.End(),
		"total_accounts", total,
		"fetch_workers", r.cfg.Fetcher.Workers,
		"process_workers", r.cfg.Processor.Workers,
		"output_file", r.store.Path(),
	)
	r.setState(StateRunning)

	tasks := r.startProvider(ctx)
	completions := r.startFetchers(ctx, tasks)

	// The process queue is buffered so a slow persistence path does not
	// immediately stall the completion drain.
	processCh := make(chan FetchOutcome, 2*r.cfg.Processor.Workers)
	processed := r.startProcessors(processCh)

	// Drain fetch completions as they arrive (no cross-candidate ordering)
	// and hand status-bearing outcomes to the process pool. Transport
	// failures were already counted by the fetch stage.
	var done uint64
	for outcome := range completions {
		done++
		if r.progress != nil {
			r.progress(done, total)
		}
		if outcome.Err == nil {
			processCh <- outcome
		}
	}
	close(processCh)
	<-processed

	snap = r.metrics.Snapshot()
	final := StateCompleted
	if ctx.Err() != nil {
		final = StateInterrupted
	}
	r.setState(final)
	r.reportSummary(final, snap, total)
	return snap, nil
}

func (r *Runner) reportSummary(final State, snap Snapshot, total uint64) {
	var checkedPct, validPct float64
	if total > 0 {
		checkedPct = float64(snap.Checked) / float64(total) * 100
	}
	if snap.Checked > 0 {
		validPct = float64(snap.Valid) / float64(snap.Checked) * 100
	}
	zap.S().Infow(
		"validation run finished",
		"state", final.String(),
		"checked", snap.Checked,
		"valid", snap.Valid,
		"errors", snap.Errors,
		"rate_limited", snap.RateLimited,
		"checked_pct", fmt.Sprintf("%.1f", checkedPct),
		"valid_pct", fmt.Sprintf("%.1f", validPct),
		"elapsed", snap.Elapsed.Round(time.Millisecond),
		"rate_per_sec", fmt.Sprintf("%.2f", snap.Rate),
	)
	if snap.Valid > 0 {
		zap.S().Infow("valid accounts saved", "output_file", r.store.Path())
	}
}
