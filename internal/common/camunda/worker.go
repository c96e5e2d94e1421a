// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"scriptgen-workers/internal/common/config"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/metrics"
	"scriptgen-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const commandTimeout = 10 * time.Second

// Runner carries what every job handler needs around its execute step.
type Runner struct {
	taskType string
	timeout  time.Duration
	obs      *observability.Observability
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewRunner(taskType string, timeout time.Duration, obs *observability.Observability, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log = log.With(map[string]interface{}{"taskType": taskType})
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		obs:      obs,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

func (r *Runner) TaskType() string { return r.taskType }

func (r *Runner) Logger() logger.Logger { return r.logger }

// Process decodes the job variables into I, runs exec under the runner
// timeout and completes the job with its output. Any error is handed to
// the shared ErrorHandler, which fails the job with retries or throws a
// BPMN error.
func Process[I any, O any](r *Runner, client worker.JobClient, job entities.Job, exec func(context.Context, *I) (*O, error)) {
	start := time.Now()
	tracker := metrics.StartJob(r.taskType)

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	output, err := run(ctx, job.Variables, exec)

	sendCtx, sendCancel := context.WithTimeout(context.Background(), commandTimeout)
	defer sendCancel()

	if err != nil {
		code := string(apperrors.FromError(err).Code)
		tracker.Done(code)
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
		r.obs.RecordJobProcessed(ctx, r.taskType, "failed")
		r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "failed")

		r.errors.HandleJobError(sendCtx, client, job, err)
		return
	}

	tracker.Done("")
	r.obs.RecordJobProcessed(ctx, r.taskType, "completed")
	r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "completed")

	r.completeJob(sendCtx, client, job, output)
}

func run[I any, O any](ctx context.Context, variables string, exec func(context.Context, *I) (*O, error)) (*O, error) {
	input, err := DecodeInput[I](variables)
	if err != nil {
		return nil, err
	}
	return exec(ctx, input)
}

// DecodeInput unmarshals job variables; an empty document decodes to the
// zero value.
func DecodeInput[I any](variables string) (*I, error) {
	var input I
	if strings.TrimSpace(variables) == "" {
		return &input, nil
	}
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError("parse input: " + err.Error())
	}
	return &input, nil
}

func (r *Runner) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.errors.HandleJobError(ctx, client, job, err)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	r.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}

// StartWorker opens a job worker for taskType using the per-worker settings.
// It returns nil when the worker is disabled.
func StartWorker(client *Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	w := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(wcfg.TimeoutDuration()).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return w
}
