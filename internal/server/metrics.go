package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mednote_reports_generated_total",
			Help: "Consultation reports generated, by language",
		},
		[]string{"language"},
	)

	reportParseFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mednote_report_parse_failures_total",
			Help: "Model responses that fell back to the empty report",
		},
	)

	transcriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mednote_transcriptions_total",
			Help: "Audio transcription requests, by outcome",
		},
		[]string{"outcome"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mednote_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(reportsGenerated)
	prometheus.MustRegister(reportParseFailures)
	prometheus.MustRegister(transcriptions)
	prometheus.MustRegister(httpRequestDuration)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r)
		httpRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
			fmt.Sprintf("%d", wrapped.statusCode),
		).Observe(time.Since(start).Seconds())
	})
}
