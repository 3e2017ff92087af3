package pipeline

import (
	"sync"

	"go.uber.org/zap"
)

// startProcessors launches the classification pool. The returned channel
// is closed once every submitted outcome has been handled.
func (r *Runner) startProcessors(input <-chan FetchOutcome) <-chan struct{} {
	done := make(chan struct{})
	wg := sync.WaitGroup{}
	for i := range r.cfg.Processor.Workers {
		wg.Go(func() {
			r.processWorker(input, i)
		})
	}

	go func() {
		wg.Wait()
		close(done)
		zap.S().Debug("all process workers have been stopped")
	}()

	return done
}

// processWorker drains outcomes until the channel closes. It never exits
// early on cancellation: whatever the fetch stage completed gets
// classified and reflected in the final numbers.
func (r *Runner) processWorker(input <-chan FetchOutcome, processorNum int) {
	logger := zap.S().With("processor_num", processorNum)
	logger.Debugw("process worker is starting up")

	for outcome := range input {
		r.handleOutcome(outcome, logger)
	}
	logger.Debugw("process worker has no work left")
}

// handleOutcome performs the side effect for one classified outcome.
// A failure here is isolated to this candidate: it becomes an error
// counter increment and a log record, never a stage abort.
func (r *Runner) handleOutcome(outcome FetchOutcome, logger *zap.SugaredLogger) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.RecordError()
			logger.Errorw(
				"processing outcome panicked",
				"account", outcome.Candidate,
				"panic", rec,
			)
		}
	}()

	switch Classify(outcome) {
	case ClassValid:
		if err := r.store.Append(outcome.Candidate); err != nil {
			r.metrics.RecordError()
			logger.Errorw(
				"persisting valid account",
				"account", outcome.Candidate,
				"error", err,
			)
			return
		}
		r.metrics.RecordValid()
		logger.Infow("valid account found", "account", outcome.Candidate)
	case ClassRateLimited:
		r.metrics.RecordRateLimited()
		logger.Warnw(
			"rate limit reached, fetch pool is backing off",
			"account", outcome.Candidate,
		)
	case ClassNotFound:
		// expected majority outcome, nothing to do
	default:
		logger.Warnw(
			"unexpected status from accounts API",
			"account", outcome.Candidate,
			"status_code", outcome.StatusCode,
		)
	}
}
