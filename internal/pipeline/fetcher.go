package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"resty.dev/v3"
)

var (
	ErrRateLimited = errors.New("too many requests to accounts API")
	ErrServerError = errors.New("server error from accounts API")
)

// startFetchers launches the probe pool. Every candidate taken from input
// results in exactly one outcome on the returned channel; the channel is
// closed once all workers have stopped.
func (r *Runner) startFetchers(
	ctx context.Context,
	input <-chan Candidate,
) <-chan FetchOutcome {
	output := make(chan FetchOutcome, r.cfg.Fetcher.Workers)
	wg := sync.WaitGroup{}
	for i := range r.cfg.Fetcher.Workers {
		wg.Go(func() {
			r.fetchWorker(ctx, input, output, i)
		})
	}

	go func() {
		wg.Wait()
		close(output)
		zap.S().Debug("all fetch workers have been stopped")
	}()

	return output
}

func (r *Runner) fetchWorker(
	ctx context.Context,
	input <-chan Candidate,
	output chan<- FetchOutcome,
	fetcherNum int,
) {
	logger := zap.S().With("fetcher_num", fetcherNum)
	logger.Debugw("fetch worker is starting up")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			select {
			case <-ctx.Done():
				return
			case candidate, opened := <-input:
				if !opened {
					logger.Debugw("fetch worker has no work left")
					return
				}
				outcome := r.probe(ctx, candidate)
				r.metrics.RecordChecked()
				if outcome.Err != nil {
					r.metrics.RecordError()
					logger.Errorw(
						"probing account failed",
						"account", candidate,
						"error", outcome.Err,
					)
				}
				output <- outcome
			}
		}
	}
}

// probe issues one request for the candidate and captures the result.
// Transport failures are folded into the outcome, never propagated. When
// the circuit breaker is open after repeated 429/5xx responses the worker
// pauses and re-probes the same candidate, so the completed probe is still
// counted exactly once.
func (r *Runner) probe(ctx context.Context, candidate Candidate) FetchOutcome {
	requestURL := r.probeURL(candidate)
	for {
		resp, err := r.circuitBreaker.Execute(func() (*resty.Response, error) {
			resp, err := r.httpClient.R().WithContext(ctx).Get(requestURL)
			if err != nil {
				return nil, err
			}
			switch {
			case resp.StatusCode() == http.StatusTooManyRequests:
				return resp, ErrRateLimited
			case resp.StatusCode() >= 500:
				return resp, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode())
			}
			return resp, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) ||
			errors.Is(err, gobreaker.ErrTooManyRequests) {
			zap.S().Warnw(
				"fetch pool is paused after repeated rate limits or server errors",
				"pause", r.cfg.Fetcher.CircuitBreaker.Timeout,
			)
			select {
			case <-time.After(r.cfg.Fetcher.CircuitBreaker.Timeout):
				continue
			case <-ctx.Done():
				return FetchOutcome{Candidate: candidate, Err: ctx.Err()}
			}
		}

		if resp == nil {
			return FetchOutcome{Candidate: candidate, Err: err}
		}
		return FetchOutcome{
			Candidate:  candidate,
			StatusCode: resp.StatusCode(),
			Header:     resp.Header(),
			Duration:   resp.Duration(),
		}
	}
}
