package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// QuoteTotal counts quote computations by outcome.
	QuoteTotal *prometheus.CounterVec
	// QuoteDuration records quote computation latency in milliseconds.
	QuoteDuration prometheus.Histogram
	// DatasetReloadTotal counts dataset load attempts by result.
	DatasetReloadTotal *prometheus.CounterVec
	// DatasetLoadedTimestamp holds the unix time of the last successful load.
	DatasetLoadedTimestamp prometheus.Gauge
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		QuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of quote computations by outcome.",
		}, []string{"result"})
		QuoteDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_duration_ms",
			Help:      "Quote computation latency in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		})
		DatasetReloadTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reload_total",
			Help:      "Count of tariff dataset load attempts by result.",
		}, []string{"result"})
		DatasetLoadedTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded_timestamp_seconds",
			Help:      "Unix timestamp of the last successful dataset load.",
		})
		reg.MustRegister(QuoteTotal, QuoteDuration, DatasetReloadTotal, DatasetLoadedTimestamp)
	})
}
