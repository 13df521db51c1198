package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CalculationsTotal counts calculator invocations by kind and outcome.
	CalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxval_calculations_total",
			Help: "number of valuation calculations served, by calculator and outcome",
		}, []string{"calculator", "outcome"},
	)

	// MisalignmentPercent observes PPP misalignments served by the API.
	MisalignmentPercent = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fxval_ppp_misalignment_percent",
			Help:    "PPP misalignment percent of served calculations",
			Buckets: prometheus.LinearBuckets(-20, 5, 9), // -20% .. +20%
		},
	)

	// PredictedChangePercent observes IFE exact predicted changes served by the API.
	PredictedChangePercent = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fxval_ife_predicted_change_percent",
			Help:    "IFE exact predicted change percent of served calculations",
			Buckets: prometheus.LinearBuckets(-10, 2.5, 9),
		},
	)

	// RequestDuration tracks HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fxval_http_request_duration_seconds",
			Help:    "latency of API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"},
	)
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func init() {
	prometheus.MustRegister(
		CalculationsTotal,
		MisalignmentPercent,
		PredictedChangePercent,
		RequestDuration,
	)
}

// ObserveCalculation records one calculator call.
func ObserveCalculation(calculator string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	CalculationsTotal.WithLabelValues(calculator, outcome).Inc()
}
