package pipeline

import (
	"context"

	"go.uber.org/zap"
)

// startProvider streams the candidate sequence into a bounded task queue.
// The queue is deliberately small relative to the range: the fetch pool
// gates execution, and pending work never materializes the whole range in
// memory. Cancellation stops new submissions immediately.
func (r *Runner) startProvider(ctx context.Context) <-chan Candidate {
	out := make(chan Candidate, 2*r.cfg.Fetcher.Workers)

	go func() {
		defer close(out)
		for candidate := range r.seq.All() {
			select {
			case out <- candidate:
			case <-ctx.Done():
				zap.S().Infow(
					"provider stopped submitting new candidates",
					"reason", ctx.Err(),
				)
				return
			}
		}
		zap.S().Debug("provider has submitted the whole range")
	}()

	return out
}
