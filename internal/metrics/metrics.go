package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "careerquiz"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"service", "method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method", "path", "status"})

	httpInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	}, []string{"service"})

	questionBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "question_batches_total",
		Help:      "Question batches produced, by how the batch was assembled",
	}, []string{"outcome"})

	validQuestionYield = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "question_valid_yield",
		Help:      "Number of valid questions decoded from a model response",
		Buckets:   []float64{0, 5, 10, 15, 20, 25, 28, 30},
	})

	rejectedQuestions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "question_records_rejected_total",
		Help:      "Decoded question records dropped by validation",
	})

	insightReports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insight_reports_total",
		Help:      "Insight reports produced, by source",
	}, []string{"outcome"})

	modelCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_call_duration_seconds",
		Help:      "Latency of outbound model calls",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 45},
	}, []string{"pipeline", "status"})
)

// ObserveQuestionBatch records how a question batch was assembled.
func ObserveQuestionBatch(outcome string, validCount int) {
	questionBatches.WithLabelValues(outcome).Inc()
	if validCount >= 0 {
		validQuestionYield.Observe(float64(validCount))
	}
}

func ObserveRejectedQuestion() {
	rejectedQuestions.Inc()
}

func ObserveInsightReport(outcome string) {
	insightReports.WithLabelValues(outcome).Inc()
}

// ObserveModelCall records latency of a model call for a pipeline.
func ObserveModelCall(pipeline string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	modelCallDuration.WithLabelValues(pipeline, status).Observe(elapsed.Seconds())
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request metrics with Prometheus labels. The path label
// uses the matched chi route pattern so ids do not explode cardinality.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.WithLabelValues(service).Inc()
			defer httpInFlight.WithLabelValues(service).Dec()

			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"service": service,
				"method":  r.Method,
				"path":    routePattern(r),
				"status":  strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
