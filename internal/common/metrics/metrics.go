// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ContextCategoryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "script_context_category_total",
			Help: "Context bundles assembled, by resolved product category",
		},
		[]string{"category"},
	)

	ContextBundleItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "script_context_bundle_items",
			Help:    "Number of entries per context bundle section",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		},
		[]string{"section"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of text generation calls",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"model", "status"},
	)

	AgentWebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_webhook_requests_total",
			Help: "Agent webhook calls by workflow and outcome",
		},
		[]string{"workflow", "status"},
	)

	LibraryScriptsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_scripts_saved_total",
			Help: "Scripts written to the script library",
		},
	)
)

// JobTracker records the lifecycle of one job.
type JobTracker struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active; call Done exactly once.
func StartJob(taskType string) *JobTracker {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTracker{taskType: taskType, start: time.Now()}
}

// Done records duration and outcome. An empty errorCode means success.
func (j *JobTracker) Done(errorCode string) {
	WorkerJobsActive.WithLabelValues(j.taskType).Dec()
	WorkerJobDuration.WithLabelValues(j.taskType).Observe(time.Since(j.start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(j.taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(j.taskType, errorCode).Inc()
}
