package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomerMutationsTotal *prometheus.CounterVec
	LoginAttemptsTotal     *prometheus.CounterVec
	ExportsTotal           prometheus.Counter
	ListSessions           prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "isp_billing_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomerMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "isp_billing_customer_mutations_total",
				Help: "Customer create/update/delete operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		LoginAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "isp_billing_login_attempts_total",
				Help: "Administrator sign-in attempts by outcome.",
			},
			[]string{"outcome"},
		),
		ExportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "isp_billing_customer_exports_total",
				Help: "Total number of customer CSV exports served.",
			},
		),
		ListSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "isp_billing_list_sessions",
				Help: "Customer list sessions currently held in memory.",
			},
		),
	}
)

func RecordDBQuery(queryName string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerMutation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	Business.CustomerMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordLoginAttempt(outcome string) {
	Business.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordExport() {
	Business.ExportsTotal.Inc()
}

func SetListSessions(n int) {
	Business.ListSessions.Set(float64(n))
}
