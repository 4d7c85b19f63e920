package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	requestsReceived prometheus.Counter
	responsesSent    *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	moviesLoaded     prometheus.Gauge
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	m := &httpMetrics{
		requestsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_requests_received_total",
			Help: "Total number of requests received.",
		}),
		responsesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_responses_sent_total",
				Help: "Total number of responses sent, by status code.",
			},
			[]string{"code"},
		),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time spent processing requests.",
			Buckets: prometheus.DefBuckets,
		}),
		moviesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "favorites_movies_loaded",
			Help: "Number of movie records held in memory.",
		}),
	}

	reg.MustRegister(
		m.requestsReceived,
		m.responsesSent,
		m.requestDuration,
		m.moviesLoaded,
	)

	return m
}
