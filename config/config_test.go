package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	raw := `
api:
  base_url: http://localhost:8080
  timeout: 3s
range:
  start: "2000000000000000"
  end: "2000000000000099"
fetcher:
  workers: 8
  circuit_breaker:
    enabled: true
    consecutive_failure: 5
    timeout: 15s
processor:
  workers: 3
output:
  path: out.txt
  append_retries: 2
log:
  level: debug
  encoding: json
monitor:
  enabled: true
  addr: ":9191"
shutdown:
  grace_period: 10s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadFromYAML(path)
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, "2000000000000000", cfg.Range.Start)
	require.Equal(t, "2000000000000099", cfg.Range.End)
	require.Equal(t, 8, cfg.Fetcher.Workers)
	require.True(t, cfg.Fetcher.CircuitBreaker.Enabled)
	require.Equal(t, uint32(5), cfg.Fetcher.CircuitBreaker.ConsecutiveFailure)
	require.Equal(t, 15*time.Second, cfg.Fetcher.CircuitBreaker.Timeout)
	require.Equal(t, 3, cfg.Processor.Workers)
	require.Equal(t, "out.txt", cfg.Output.Path)
	require.Equal(t, 2, cfg.Output.AppendRetries)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Encoding)
	require.True(t, cfg.Monitor.Enabled)
	require.Equal(t, ":9191", cfg.Monitor.Addr)
	require.Equal(t, 10*time.Second, cfg.Shutdown.GracePeriod)
}

func TestLoadFromYAMLMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateClampsWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fetch       int
		process     int
		wantFetch   int
		wantProcess int
	}{
		{"in bounds", 10, 5, 10, 5},
		{"too low", 0, -3, MinFetchWorkers, MinProcessWorkers},
		{"too high", 1000, 1000, MaxFetchWorkers, MaxProcessWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{
				API:       APIConfig{BaseURL: "http://localhost:8080"},
				Fetcher:   FetcherConfig{Workers: tt.fetch},
				Processor: ProcessorConfig{Workers: tt.process},
				Output:    OutputConfig{Path: "out.txt"},
			}
			require.NoError(t, cfg.Validate())
			require.Equal(t, tt.wantFetch, cfg.Fetcher.Workers)
			require.Equal(t, tt.wantProcess, cfg.Processor.Workers)
		})
	}
}

func TestValidateRejectsMissingSettings(t *testing.T) {
	t.Parallel()

	cfg := &Config{Output: OutputConfig{Path: "out.txt"}}
	require.Error(t, cfg.Validate())

	cfg = &Config{API: APIConfig{BaseURL: "http://localhost:8080"}}
	require.Error(t, cfg.Validate())
}
