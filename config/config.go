// Package config provides a way to configure the application.
package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Worker pool bounds. Values outside of these are clamped, not rejected,
// so a sloppy config still produces a runnable pipeline.
const (
	MinFetchWorkers   = 1
	MaxFetchWorkers   = 50
	MinProcessWorkers = 1
	MaxProcessWorkers = 20
)

type Config struct {
	// Configuration of interaction between the validator and the accounts API
	API APIConfig `yaml:"api"       env:", prefix=API_"`
	// Account number range to enumerate
	Range RangeConfig `yaml:"range"     env:", prefix=RANGE_"`
	// Settings related to the fetch stage - the pool that probes the API
	Fetcher FetcherConfig `yaml:"fetcher"   env:", prefix=FETCHER_"`
	// Settings related to the process stage - the pool that classifies
	// probe outcomes and persists valid accounts
	Processor ProcessorConfig `yaml:"processor" env:", prefix=PROCESSOR_"`
	// Valid accounts output file
	Output OutputConfig `yaml:"output"    env:", prefix=OUTPUT_"`
	// Logger configuration
	Log LogConfig `yaml:"log"       env:", prefix=LOG_"`
	// Optional monitoring endpoint (prometheus + JSON stats)
	Monitor MonitorConfig `yaml:"monitor"   env:", prefix=MONITOR_"`
	// Graceful shutdown logic configuration
	Shutdown ShutdownConfig `yaml:"shutdown"  env:", prefix=SHUTDOWN_"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL, default=https://api.mullvad.net/www/accounts/v1"`
	// Timeout for a single probe
	Timeout time.Duration `yaml:"timeout"  env:"TIMEOUT, default=5s"`
	// Retries on 5xx before a probe is given up on
	NumRetries  int           `yaml:"num_retries"   env:"N_RETRIES, default=0"`
	MinWaitTime time.Duration `yaml:"min_wait_time" env:"MIN_WAIT_TIME, default=1s"`
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"MAX_WAIT_TIME, default=8s"`
}

type RangeConfig struct {
	// Inclusive bounds, fixed-width decimal strings. Width is significant:
	// account numbers are identifiers, not integers.
	Start string `yaml:"start" env:"START, default=1000000000000000"`
	End   string `yaml:"end"   env:"END, default=1000000000009999"`
}

type CircuitBreakerConfig struct {
	Enabled                 bool          `yaml:"enabled"                    env:"ENABLE, default=true"`
	MaxRequests             uint32        `yaml:"max_requests"               env:"MAX_REQUESTS, default=10"`
	ConsecutiveFailure      uint32        `yaml:"consecutive_failure"        env:"CONSECUTIVE_FAILURE, default=10"`
	TotalFailurePerInterval uint32        `yaml:"total_failure_per_interval" env:"TOTAL_FAILURE_PER_INTERVAL, default=100"`
	Interval                time.Duration `yaml:"interval"                   env:"INTERVAL, default=60s"`
	Timeout                 time.Duration `yaml:"timeout"                    env:"TIMEOUT, default=10s"`
}

type FetcherConfig struct {
	Workers int `yaml:"workers" env:"N_WORKERS, default=10"`

	// Circuit breaker pauses the fetch pool after repeated 429/5xx
	// responses instead of hammering an overloaded API.
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" env:", prefix=CB_"`
}

type ProcessorConfig struct {
	Workers int `yaml:"workers" env:"N_WORKERS, default=5"`
}

type OutputConfig struct {
	Path string `yaml:"path" env:"FILE_PATH, default=valid_accounts.txt"`
	// Retries for a single line append before the outcome is counted
	// as a processing error
	AppendRetries int `yaml:"append_retries" env:"APPEND_RETRIES, default=3"`
}

type MonitorConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLE, default=false"`
	Addr    string `yaml:"addr"    env:"ADDR, default=:9090"`
}

type ShutdownConfig struct {
	GracePeriod time.Duration `yaml:"grace_period" env:"GRACE_PERIOD, default=30s"`
}

type LogConfig struct {
	Level    zapcore.Level `yaml:"level"    env:"LEVEL, default=info"`
	Encoding string        `yaml:"encoding" env:"ENCODING, default=console"`
}

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to YAML configuration file")
	_ = godotenv.Load() // load the user-defined `.env` file
}

// Load reads the optional YAML config file and applies environment
// variable overrides on top of it.
func Load(ctx context.Context) (*Config, error) {
	if !flag.Parsed() {
		flag.Parse()
	}
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	cfg := &Config{}
	if configPath != "" {
		var err error
		cfg, err = LoadFromYAML(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading configuration from %s: %w", configPath, err)
		}
	}

	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("processing env overrides: %w", err)
	}
	return cfg, nil
}

func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would make a run impossible and clamps
// worker counts into their documented bounds. Range bounds are validated
// separately when the candidate sequence is built.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base url is empty")
	}
	if c.Output.Path == "" {
		return errors.New("output path is empty")
	}
	c.Fetcher.Workers = clamp(c.Fetcher.Workers, MinFetchWorkers, MaxFetchWorkers)
	c.Processor.Workers = clamp(c.Processor.Workers, MinProcessWorkers, MaxProcessWorkers)
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
