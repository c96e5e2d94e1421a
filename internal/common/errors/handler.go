package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler turns a worker error into either a failed job with retries
// or a thrown BPMN error.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decide reports what HandleJobError would do for err on a job that still
// has jobRetries left: the BPMN error and whether it is thrown.
func (h *ErrorHandler) Decide(err error, jobRetries int32) (*BPMNError, bool) {
	bpmnErr := ConvertToBPMNError(FromError(err))
	throw := bpmnErr.Retries == 0 || jobRetries <= 1
	return bpmnErr, throw
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := FromError(err)
	bpmnErr, throw := h.Decide(stdErr, job.Retries)

	h.logError(job, stdErr, bpmnErr, throw)

	if throw {
		h.throwBPMNError(ctx, client, job, bpmnErr)
		return
	}
	h.failJobWithRetries(ctx, client, job, bpmnErr)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	// job.Retries is what the engine has left; never raise it.
	retries := int32(bpmnErr.Retries)
	if job.Retries-1 < retries {
		retries = job.Retries - 1
	}

	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message + ": " + bpmnErr.Details)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			_, err = withVars.Send(ctx)
			h.logSendFailure(job, "fail", err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.logSendFailure(job, "fail", err)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if vars, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(vars)); err == nil {
			_, err = withVars.Send(ctx)
			h.logSendFailure(job, "throw error", err)
			return
		}
	}
	_, err := cmd.Send(ctx)
	h.logSendFailure(job, "throw error", err)
}

func (h *ErrorHandler) logSendFailure(job entities.Job, command string, err error) {
	if err == nil {
		return
	}
	h.logger.Error("failed to send "+command+" command", map[string]interface{}{
		"jobKey": job.Key,
		"error":  err.Error(),
	})
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, thrown bool) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          bpmnErr.Retries,
		"thrown":           thrown,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
