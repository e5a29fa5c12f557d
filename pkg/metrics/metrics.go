package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics holds the HTTP and checkout instruments. Registered
// once at startup; handlers observe through the struct.
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	Checkouts    *prometheus.CounterVec
	OrdersPlaced prometheus.Counter
}

func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rental",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "path"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rental",
		Name:      "orders_placed_total",
		Help:      "Orders created by successful checkouts.",
	})

	prometheus.MustRegister(requests, latency, checkouts, orders)
	return &ServerMetrics{
		Requests:     requests,
		LatencyMS:    latency,
		Checkouts:    checkouts,
		OrdersPlaced: orders,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
