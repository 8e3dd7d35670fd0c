package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks outgoing API requests from the client side.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	ForcedLogouts   prometheus.Counter
}

// New creates client metrics registered on the given registerer. Passing a
// fresh registry keeps tests isolated from the default global one.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kampomido_api_requests_total",
			Help: "Total API requests by resource and outcome",
		}, []string{"resource", "outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kampomido_api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ForcedLogouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kampomido_forced_logouts_total",
			Help: "Sessions cleared by a 401 from a non-dashboard endpoint",
		}),
	}
	reg.MustRegister(m.Requests, m.RequestDuration, m.ForcedLogouts)
	return m
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(resource, outcome string, start time.Time) {
	m.Requests.WithLabelValues(resource, outcome).Inc()
	m.RequestDuration.Observe(time.Since(start).Seconds())
}

// IncrementForcedLogout counts a global 401 logout.
func (m *Metrics) IncrementForcedLogout() {
	m.ForcedLogouts.Inc()
}
