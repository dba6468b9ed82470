// Package metrics defines the Prometheus collectors for the prediction pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeForbidden       = "forbidden"
	OutcomeInvalid         = "invalid"
	OutcomeUpstream        = "upstream_error"
	OutcomeError           = "error"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rookery",
			Name:      "predictions_total",
			Help:      "Prediction requests handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	predictionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rookery",
			Name:      "prediction_seconds",
			Help:      "End-to-end prediction request latency in seconds, including identity provider calls.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	identityRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rookery",
			Name:      "identity_requests_total",
			Help:      "Identity provider calls, partitioned by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	identityRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rookery",
			Name:      "identity_request_seconds",
			Help:      "Identity provider call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Register attaches rookery collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		predictionsTotal,
		predictionSeconds,
		identityRequestsTotal,
		identityRequestSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObservePrediction records a prediction request duration and outcome label.
func ObservePrediction(duration time.Duration, outcome string) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	predictionSeconds.Observe(duration.Seconds())
}

func observeIdentity(operation string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	identityRequestsTotal.WithLabelValues(operation, outcome).Inc()
	identityRequestSeconds.WithLabelValues(operation).Observe(duration.Seconds())
}
