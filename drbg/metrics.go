package drbg

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generatedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hashdrbg_generated_bytes",
			Help: "Number of pseudorandom bytes produced by readers.",
		},
		[]string{"strength"},
	)
	generateRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hashdrbg_generate_requests",
			Help: "Number of Generate calls issued by readers.",
		},
		[]string{"strength"},
	)
	reseeds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hashdrbg_reseeds",
			Help: "Number of reseeds performed by readers.",
		},
		[]string{"strength"},
	)
	drbgCollectors = []prometheus.Collector{
		generatedBytes,
		generateRequests,
		reseeds,
	}

	metricsOnce sync.Once
)

func initMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(drbgCollectors...)
	})
}
