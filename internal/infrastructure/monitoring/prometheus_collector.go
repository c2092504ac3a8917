package monitoring

import (
	"time"

	"livevip/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	streamsTotal     prometheus.Gauge
	streamsVIPTotal  prometheus.Gauge
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	premiumChecks    *prometheus.CounterVec
	paymentsTotal    *prometheus.CounterVec
	catalogMutations *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		streamsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "livevip_streams_total",
			Help: "Number of streams currently in the catalog",
		}),

		streamsVIPTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "livevip_streams_vip_total",
			Help: "Number of VIP-only streams currently in the catalog",
		}),

		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevip_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livevip_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"method", "route"}),

		premiumChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevip_premium_checks_total",
			Help: "Premium entitlement checks by result",
		}, []string{"result"}),

		paymentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevip_payments_total",
			Help: "Payment webhook deliveries by status",
		}, []string{"status"}),

		catalogMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevip_catalog_mutations_total",
			Help: "Catalog create/update/delete operations",
		}, []string{"operation"}),
	}
}

func (p *PrometheusCollector) SetCatalogSize(total, vipOnly int) {
	p.streamsTotal.Set(float64(total))
	p.streamsVIPTotal.Set(float64(vipOnly))
}

func (p *PrometheusCollector) RecordRequest(method, route, status string, duration time.Duration) {
	p.requestsTotal.WithLabelValues(method, route, status).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *PrometheusCollector) RecordPremiumCheck(premium bool) {
	result := "free"
	if premium {
		result = "premium"
	}
	p.premiumChecks.WithLabelValues(result).Inc()
}

func (p *PrometheusCollector) RecordPayment(status string) {
	p.paymentsTotal.WithLabelValues(status).Inc()
}

func (p *PrometheusCollector) RecordCatalogMutation(operation string) {
	p.catalogMutations.WithLabelValues(operation).Inc()
}

// CatalogChanged lets the collector sit alongside the push hub as a
// catalog notifier, counting mutations as they are broadcast.
func (p *PrometheusCollector) CatalogChanged(event string, _ *domain.Stream) {
	p.RecordCatalogMutation(event)
}
