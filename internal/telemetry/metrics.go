package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GatewayRequests counts HTTP responses observed by the API gateway,
	// labeled by method and status code.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletwatch_gateway_requests_total",
		Help: "Total HTTP responses received from the dashboard backend.",
	}, []string{"method", "code"})

	// AuthFailures counts authorization failures (401) observed on any endpoint.
	AuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletwatch_auth_failures_total",
		Help: "Total authorization failures observed by the gateway.",
	})

	// BlocklistSize tracks the current size of the local blocklist cache.
	BlocklistSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "walletwatch_blocklist_entries",
		Help: "Number of entries in the local blocklist cache.",
	})
)

// StartMetricsServer starts a HTTP server exposing Prometheus metrics.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
