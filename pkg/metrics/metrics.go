package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	Bookings      *prometheus.CounterVec
	Cancellations *prometheus.CounterVec
	Refunded      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voyago",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voyago",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		Bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voyago",
			Name:      "bookings_total",
			Help:      "Booking attempts by listing kind and outcome.",
		}, []string{"kind", "outcome"}),
		Cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voyago",
			Name:      "cancellations_total",
			Help:      "Cancellation attempts by subject and outcome.",
		}, []string{"subject", "outcome"}),
		Refunded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voyago",
			Name:      "refunded_amount_total",
			Help:      "Amount credited back to wallets by cancellations.",
		}, []string{"subject"}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.Bookings, m.Cancellations, m.Refunded)
	return m
}

func (m *Metrics) ObserveBooking(kind, outcome string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveCancellation(subject, outcome string) {
	if m == nil {
		return
	}
	m.Cancellations.WithLabelValues(subject, outcome).Inc()
}

func (m *Metrics) ObserveRefund(subject string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.Refunded.WithLabelValues(subject).Add(amount.InexactFloat64())
}

// GinMiddleware records request count and latency per route template
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler serves the registry gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
