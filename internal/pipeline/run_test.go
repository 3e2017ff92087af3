package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		API: config.APIConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		},
		Range: config.RangeConfig{
			Start: "1000000000000000",
			End:   "1000000000000004",
		},
		Fetcher: config.FetcherConfig{
			Workers: 4,
			CircuitBreaker: config.CircuitBreakerConfig{
				Enabled: false,
				Timeout: 10 * time.Millisecond,
			},
		},
		Processor: config.ProcessorConfig{Workers: 2},
		Output: config.OutputConfig{
			Path:          filepath.Join(t.TempDir(), "valid_accounts.txt"),
			AppendRetries: 1,
		},
	}
}

func accountFromPath(path string) string {
	return strings.Trim(path, "/")
}

func TestRunMixedOutcomes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch accountFromPath(r.URL.Path) {
		case "1000000000000000":
			w.WriteHeader(http.StatusOK)
		case "1000000000000004":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	runner, err := New(cfg)
	require.NoError(t, err)

	snap, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, uint64(5), snap.Checked)
	require.Equal(t, uint64(1), snap.Valid)
	require.Equal(t, uint64(1), snap.RateLimited)
	require.Equal(t, uint64(0), snap.Errors)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000\n", string(data))

	require.Equal(t, StateIdle, runner.State())
}

func TestRunAllProbesTimeOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.API.Timeout = 50 * time.Millisecond

	runner, err := New(cfg)
	require.NoError(t, err)

	snap, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, uint64(5), snap.Checked)
	require.Equal(t, uint64(5), snap.Errors)
	require.Equal(t, uint64(0), snap.Valid)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	require.Empty(t, string(data))
}

func TestRunProgressCoversEveryCompletion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	runner, err := New(cfg)
	require.NoError(t, err)

	var calls atomic.Uint64
	var sawTotal atomic.Uint64
	runner.OnProgress(func(done, total uint64) {
		calls.Add(1)
		sawTotal.Store(total)
	})

	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, uint64(5), calls.Load())
	require.Equal(t, uint64(5), sawTotal.Load())
}

func TestRunInterruptionStopsNewSubmissions(t *testing.T) {
	t.Parallel()

	var served atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.Range.End = "1000000000000499" // 500 candidates
	cfg.Fetcher.Workers = 4

	runner, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	snap, err := runner.Run(ctx)
	require.NoError(t, err)

	// The run drained early: far fewer probes than the range holds, and
	// everything drained is accounted for.
	require.Less(t, snap.Checked, uint64(500))
	require.Greater(t, snap.Checked, uint64(0))
	require.Equal(t, StateIdle, runner.State())
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	runner, err := New(cfg)
	require.NoError(t, err)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = runner.Run(context.Background())
	}()
	<-started
	time.Sleep(50 * time.Millisecond)

	_, err = runner.Run(context.Background())
	require.ErrorIs(t, err, ErrRunInProgress)
	close(release)
}

func TestRunBacksOffAfterRepeatedRateLimits(t *testing.T) {
	t.Parallel()

	var served atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if served.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.Range.End = "1000000000000002" // 3 candidates
	cfg.Fetcher.Workers = 1
	cfg.Processor.Workers = 1
	cfg.Fetcher.CircuitBreaker = config.CircuitBreakerConfig{
		Enabled:                 true,
		MaxRequests:             1,
		ConsecutiveFailure:      1,
		TotalFailurePerInterval: 100,
		Timeout:                 20 * time.Millisecond,
	}

	runner, err := New(cfg)
	require.NoError(t, err)

	snap, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Two rate-limited probes trip the breaker; the third candidate is
	// paused, re-probed and eventually confirmed. Nothing is dropped.
	require.Equal(t, uint64(3), snap.Checked)
	require.Equal(t, uint64(2), snap.RateLimited)
	require.Equal(t, uint64(1), snap.Valid)
	require.Equal(t, uint64(0), snap.Errors)
}

func TestNewRejectsInvalidRange(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://localhost:1")
	cfg.Range.Start = "1000000000000004"
	cfg.Range.End = "1000000000000000"

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidRange)
}
