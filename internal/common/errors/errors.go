package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMGenerationFailed ErrorCode = "LLM_GENERATION_FAILED"
	ErrCodeLLMResponseInvalid  ErrorCode = "LLM_RESPONSE_INVALID"

	ErrCodeDraftGenerationFailed ErrorCode = "DRAFT_GENERATION_FAILED"

	ErrCodeAgentWebhookFailed  ErrorCode = "AGENT_WEBHOOK_FAILED"
	ErrCodeAgentWebhookTimeout ErrorCode = "AGENT_WEBHOOK_TIMEOUT"

	ErrCodeLibraryWriteFailed ErrorCode = "LIBRARY_WRITE_FAILED"
	ErrCodeLibraryNotFound    ErrorCode = "LIBRARY_NOT_FOUND"

	ErrCodeKnowledgeBaseInvalid ErrorCode = "KNOWLEDGE_BASE_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]string{
	ErrCodeInvalidInput:          "Job input is invalid",
	ErrCodeLLMTimeout:            "Text generation timed out",
	ErrCodeLLMGenerationFailed:   "Text generation API error",
	ErrCodeLLMResponseInvalid:    "Text generation returned an unusable response",
	ErrCodeDraftGenerationFailed: "No script drafts were produced",
	ErrCodeAgentWebhookFailed:    "Agent webhook call failed",
	ErrCodeAgentWebhookTimeout:   "Agent webhook call timed out",
	ErrCodeLibraryWriteFailed:    "Script library write failed",
	ErrCodeLibraryNotFound:       "Script not found in library",
	ErrCodeKnowledgeBaseInvalid:  "Knowledge base failed validation",
}

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// IsKnownCode reports whether code is one of the codes above.
func IsKnownCode(code string) bool {
	_, ok := knownCodes[ErrorCode(code)]
	return ok
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newStandardError(code ErrorCode, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   knownCodes[code],
		Details:   details,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newStandardError(ErrCodeInvalidInput, details)
}

func NewLLMTimeoutError() *StandardError {
	return newStandardError(ErrCodeLLMTimeout, "generation call exceeded the worker timeout")
}

func NewLLMGenerationFailedError(err error) *StandardError {
	return newStandardError(ErrCodeLLMGenerationFailed, err.Error())
}

func NewLLMResponseInvalidError(details string) *StandardError {
	return newStandardError(ErrCodeLLMResponseInvalid, details)
}

func NewAgentWebhookFailedError(workflow string, err error) *StandardError {
	e := newStandardError(ErrCodeAgentWebhookFailed, err.Error())
	e.Metadata = map[string]interface{}{"workflow": workflow}
	return e
}

func NewLibraryWriteFailedError(err error) *StandardError {
	return newStandardError(ErrCodeLibraryWriteFailed, err.Error())
}

// FromError converts any error into a StandardError. Sentinel errors named
// after a known code (errors.New("LLM_TIMEOUT"), possibly wrapped as
// "LLM_TIMEOUT: detail") keep that code.
func FromError(err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	msg := err.Error()
	prefix := msg
	if i := strings.Index(msg, ":"); i >= 0 {
		prefix = msg[:i]
	}
	code := ErrorCode(strings.TrimSpace(prefix))
	if _, ok := knownCodes[code]; ok {
		return newStandardError(code, msg)
	}

	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   msg,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:          "INVALID_INPUT",
	ErrCodeLLMTimeout:            "LLM_TIMEOUT",
	ErrCodeLLMGenerationFailed:   "LLM_GENERATION_FAILED",
	ErrCodeLLMResponseInvalid:    "LLM_RESPONSE_INVALID",
	ErrCodeDraftGenerationFailed: "DRAFT_GENERATION_FAILED",
	ErrCodeAgentWebhookFailed:    "AGENT_WEBHOOK_FAILED",
	ErrCodeAgentWebhookTimeout:   "AGENT_WEBHOOK_TIMEOUT",
	ErrCodeLibraryWriteFailed:    "LIBRARY_WRITE_FAILED",
	ErrCodeLibraryNotFound:       "LIBRARY_NOT_FOUND",
	ErrCodeKnowledgeBaseInvalid:  "KNOWLEDGE_BASE_INVALID",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLLMGenerationFailed,
		ErrCodeAgentWebhookFailed,
		ErrCodeLibraryWriteFailed:
		return 3

	case ErrCodeLLMResponseInvalid,
		ErrCodeDraftGenerationFailed,
		ErrCodeAgentWebhookTimeout:
		return 2

	case ErrCodeLLMTimeout:
		return 1

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "LLM") || strings.HasPrefix(codeStr, "DRAFT"):
		return "AI"
	case strings.HasPrefix(codeStr, "AGENT"):
		return "AGENT"
	case strings.HasPrefix(codeStr, "LIBRARY"):
		return "STORAGE"
	case strings.HasPrefix(codeStr, "KNOWLEDGE"):
		return "KNOWLEDGE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
