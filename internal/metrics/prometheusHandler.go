package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsInStore = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "documents_in_store",
	Help: "Number of uploaded documents held in memory",
})

var indexBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_builds_total",
	Help: "Sentence index builds labelled by retrieval method",
}, []string{"method"})

var summaries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "summaries_total",
	Help: "Summaries produced labelled by mode",
}, []string{"mode"})

var answerCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "answer_cache_lookups_total",
	Help: "Answer cache lookups labelled by result",
}, []string{"result"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"service"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming handlers (MCP) working behind the recorder.
func (r *HttpStatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func SetDocumentsInStore(count int) {
	documentsInStore.Set(float64(count))
}

func CountIndexBuild(method string) {
	indexBuilds.WithLabelValues(method).Inc()
}

func CountSummary(mode string) {
	summaries.WithLabelValues(mode).Inc()
}

func CountCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	answerCacheLookups.WithLabelValues(result).Inc()
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
