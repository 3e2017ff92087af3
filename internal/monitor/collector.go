// Package monitor exposes the pipeline's live counters over HTTP for
// external collaborators: prometheus scrape, JSON stats and a health probe.
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/pipeline"
)

// Collector adapts a Metrics snapshot to prometheus. It reads counters on
// scrape instead of double-counting in the pipeline's hot path.
type Collector struct {
	metrics *pipeline.Metrics

	checked     *prometheus.Desc
	valid       *prometheus.Desc
	errors      *prometheus.Desc
	rateLimited *prometheus.Desc
	rate        *prometheus.Desc
}

func NewCollector(m *pipeline.Metrics) *Collector {
	return &Collector{
		metrics: m,
		checked: prometheus.NewDesc(
			"validator_accounts_checked_total",
			"Total number of completed probes.",
			nil, nil,
		),
		valid: prometheus.NewDesc(
			"validator_accounts_valid_total",
			"Total number of confirmed-valid accounts.",
			nil, nil,
		),
		errors: prometheus.NewDesc(
			"validator_errors_total",
			"Total number of transport and processing errors.",
			nil, nil,
		),
		rateLimited: prometheus.NewDesc(
			"validator_rate_limited_total",
			"Total number of 429 responses observed.",
			nil, nil,
		),
		rate: prometheus.NewDesc(
			"validator_check_rate_per_second",
			"Completed probes per second since the run started.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.checked
	ch <- c.valid
	ch <- c.errors
	ch <- c.rateLimited
	ch <- c.rate
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.metrics.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.checked, prometheus.CounterValue, float64(snap.Checked))
	ch <- prometheus.MustNewConstMetric(c.valid, prometheus.CounterValue, float64(snap.Valid))
	ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(snap.Errors))
	ch <- prometheus.MustNewConstMetric(c.rateLimited, prometheus.CounterValue, float64(snap.RateLimited))
	ch <- prometheus.MustNewConstMetric(c.rate, prometheus.GaugeValue, snap.Rate)
}
