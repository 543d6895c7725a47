package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ethereum_server"

var (
	// ValidationsTotal counts server validations by outcome.
	ValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Number of server connectivity validations by outcome.",
	}, []string{"outcome"})

	// ValidationDuration tracks how long a single validation takes.
	ValidationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "validation_duration_seconds",
		Help:      "Duration of server connectivity validations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	// ServersConfigured reports the number of servers in the store.
	ServersConfigured = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "servers_configured",
		Help:      "Number of configured Ethereum servers.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ValidationsTotal, ValidationDuration, ServersConfigured)
	})
}

// ObserveValidation records one validation outcome. An empty outcome means success.
func ObserveValidation(outcome string, elapsed time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}
	ValidationsTotal.WithLabelValues(outcome).Inc()
	ValidationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
