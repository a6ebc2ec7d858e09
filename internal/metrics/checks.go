package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/namelens/handlescan/internal/core"
)

var (
	responsesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "responses_total",
		Help:      "Responses produced, by platform and class.",
	}, []string{"platform", "class"})

	checkDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "check_duration_seconds",
		Help:      "Time spent resolving one query against one platform.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"platform"})

	tokenFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_fetches_total",
		Help:      "Platform token fetches, by outcome.",
	}, []string{"platform", "status"})

	batchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_total",
		Help:      "Batches run, by outcome.",
	}, []string{"status"})
)

// RecordResponse counts a response and observes how long it took.
func RecordResponse(response *core.Response, elapsed time.Duration) {
	if response == nil {
		return
	}
	platform := string(response.Platform)
	responsesTotal.WithLabelValues(platform, response.Class().String()).Inc()
	checkDuration.WithLabelValues(platform).Observe(elapsed.Seconds())
}

// RecordTokenFetch counts a token fetch.
func RecordTokenFetch(platform core.Platform, success bool) {
	tokenFetchesTotal.WithLabelValues(string(platform), status(success)).Inc()
}

// RecordBatch counts a finished batch.
func RecordBatch(success bool) {
	batchesTotal.WithLabelValues(status(success)).Inc()
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
