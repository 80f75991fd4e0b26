package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP responses with status >= 400",
		},
		[]string{"method", "endpoint", "status"},
	)

	streamActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "log_stream_active_connections",
			Help: "Active websocket log stream subscribers",
		},
	)

	logsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logs_recorded_total",
			Help: "Total IRC log lines accepted from the bot",
		},
	)
)

// RecordHTTPMetrics records one served request.
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())

	if status >= 400 {
		httpErrorsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	}
}

func IncrementStreamConnections() {
	streamActiveConnections.Inc()
}

func DecrementStreamConnections() {
	streamActiveConnections.Dec()
}

func IncrementLogsRecorded() {
	logsRecordedTotal.Inc()
}
