package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	EndpointLatency  *prometheus.HistogramVec
	OfferingsCreated *prometheus.CounterVec
	QRCodesRendered  prometheus.Counter
	QRRenderFailures prometheus.Counter
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors with reg. Tests pass a fresh
// registry so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "issuer_verifier_upstream_requests_total",
			Help: "Calls made to the upstream credential API, by method, resource and status code",
		}, []string{"method", "resource", "status"}),
		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "issuer_verifier_upstream_latency_seconds",
			Help:    "Latency of calls to the upstream credential API",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "resource"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "issuer_verifier_endpoint_latency_seconds",
			Help:    "Latency of inbound endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		OfferingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "issuer_verifier_offerings_created_total",
			Help: "Credential offerings created upstream, labeled by credential type",
		}, []string{"credential_type"}),
		QRCodesRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "issuer_verifier_qr_codes_rendered_total",
			Help: "QR codes rendered for offering URLs",
		}),
		QRRenderFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "issuer_verifier_qr_render_failures_total",
			Help: "QR code renders that failed",
		}),
	}
}

// ObserveUpstreamCall records one outbound call. status is 0 for transport failures.
func (m *Metrics) ObserveUpstreamCall(method, resource string, status int, elapsed time.Duration) {
	m.UpstreamRequests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	m.UpstreamLatency.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

func (m *Metrics) IncrementOfferingsCreated(credentialType string) {
	m.OfferingsCreated.WithLabelValues(credentialType).Inc()
}

func (m *Metrics) IncrementQRCodesRendered() {
	m.QRCodesRendered.Inc()
}

func (m *Metrics) IncrementQRRenderFailures() {
	m.QRRenderFailures.Inc()
}
