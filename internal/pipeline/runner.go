// Package pipeline implements the two-stage account validation pipeline:
// a bounded fetch pool probing the accounts API, a bounded process pool
// classifying the outcomes, shared run metrics and the controller that
// owns the run lifecycle.
package pipeline

import (
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

// State is the controller's lifecycle position. A run moves
// Idle -> Configuring -> Running -> (Completed | Interrupted | Failed)
// and returns to Idle after the final summary has been reported.
type State int32

const (
	StateIdle State = iota
	StateConfiguring
	StateRunning
	StateCompleted
	StateInterrupted
	StateFailed
)

var stateToString = map[State]string{
	StateIdle:        "idle",
	StateConfiguring: "configuring",
	StateRunning:     "running",
	StateCompleted:   "completed",
	StateInterrupted: "interrupted",
	StateFailed:      "failed",
}

func (s State) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "unknown"
}

// ProgressFunc is invoked once per drained probe completion, in completion
// order. done counts drained probes, total is the size of the range.
type ProgressFunc func(done, total uint64)

// Runner owns one validation pipeline: configuration, both worker pools,
// the metrics aggregator and the output store.
type Runner struct {
	cfg            *config.Config
	seq            Sequence
	probeBase      string
	httpClient     *resty.Client
	circuitBreaker *gobreaker.CircuitBreaker[*resty.Response]
	store          *Store
	metrics        *Metrics
	progress       ProgressFunc

	state atomic.Int32
}

// New validates the configuration and assembles a runner. Range and
// worker settings are checked here, before any run starts; a bad range
// surfaces as ErrInvalidRange.
func New(cfg *config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	seq, err := NewSequence(cfg.Range.Start, cfg.Range.End)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}

	r := &Runner{
		cfg:        cfg,
		seq:        seq,
		probeBase:  strings.TrimSuffix(base.String(), "/"),
		httpClient: initHTTPClient(cfg),
		store:      NewStore(cfg.Output.Path, cfg.Output.AppendRetries),
		metrics:    &Metrics{},
	}

	r.circuitBreaker = gobreaker.NewCircuitBreaker[*resty.Response](
		gobreaker.Settings{
			Name:        "account_probes",
			MaxRequests: cfg.Fetcher.CircuitBreaker.MaxRequests,
			Interval:    cfg.Fetcher.CircuitBreaker.Interval,
			Timeout:     cfg.Fetcher.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if !cfg.Fetcher.CircuitBreaker.Enabled {
					return false
				}
				tooManyTotal := counts.TotalFailures > cfg.Fetcher.CircuitBreaker.TotalFailurePerInterval
				tooManyConsecutive := counts.ConsecutiveFailures > cfg.Fetcher.CircuitBreaker.ConsecutiveFailure
				return tooManyTotal || tooManyConsecutive
			},
		})
	return r, nil
}

func initHTTPClient(cfg *config.Config) *resty.Client {
	return resty.New().
		SetRetryCount(cfg.API.NumRetries).
		SetTimeout(cfg.API.Timeout).
		SetRetryWaitTime(cfg.API.MinWaitTime).
		SetRetryMaxWaitTime(cfg.API.MaxWaitTime).
		AddRetryConditions(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return false
			}
			if resp.StatusCode() >= 500 {
				zap.S().Debugw(
					"retrying probe",
					"status_code", resp.StatusCode(),
					"url", resp.Request.URL,
				)
				return true
			}
			return false
		}).
		SetLogger(zap.S())
}

// Metrics exposes the live counters for presentation collaborators.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Store exposes the output sink, mainly so callers can report its path.
func (r *Runner) Store() *Store {
	return r.store
}

// Total is the number of candidates the configured range yields.
func (r *Runner) Total() uint64 {
	return r.seq.Count()
}

// State reads the controller's current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// OnProgress installs the per-completion progress callback. Only settable
// outside a run.
func (r *Runner) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}

func (r *Runner) probeURL(c Candidate) string {
	return r.probeBase + "/" + string(c) + "/"
}
