package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nail_http_requests_total",
		Help: "The total number of HTTP requests served",
	}, []string{"route", "code"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nail_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	InFlightRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nail_http_requests_in_flight",
		Help: "Number of requests currently being served",
	})

	SleepSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nail_sleep_seconds",
		Help:    "Time slept by /sleep requests",
		Buckets: prometheus.LinearBuckets(0.25, 0.25, 12),
	})

	SubpagesServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nail_subpages_served_total",
		Help: "The total number of subpage bodies served",
	})
)
