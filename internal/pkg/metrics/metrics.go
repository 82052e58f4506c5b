package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. Collectors are bound
// to the registerer passed to New so tests can use private registries.
type Metrics struct {
	BookingsCreated   *prometheus.CounterVec
	BookingsConfirmed prometheus.Counter
	BookingsCancelled prometheus.Counter
	WebhooksReceived  *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnosya_bookings_created_total",
			Help: "Bookings created, by kind (single or recurrent)",
		}, []string{"kind"}),

		BookingsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "turnosya_bookings_confirmed_total",
			Help: "Bookings confirmed through a validated payment",
		}),

		BookingsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "turnosya_bookings_cancelled_total",
			Help: "Bookings cancelled by users or series cancellation",
		}),

		WebhooksReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turnosya_payment_webhooks_total",
			Help: "Inbound payment webhooks, by type and payment status",
		}, []string{"type", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "turnosya_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Middleware records request latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
