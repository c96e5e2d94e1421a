// internal/workers/script-generation/refine-script-draft/handler.go
package refinescriptdraft

import (
	"context"
	"fmt"
	"strings"

	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "refine-script-draft"
)

type Handler struct {
	config    *Config
	generator llm.Generator
	obs       *observability.Observability
	runner    *camunda.Runner
	logger    logger.Logger
}

func NewHandler(config *Config, generator llm.Generator, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config:    config,
		generator: generator,
		obs:       obs,
		runner:    runner,
		logger:    runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	switch {
	case strings.TrimSpace(input.OriginalScript) == "":
		return nil, apperrors.NewInvalidInputError("originalScript is required")
	case strings.TrimSpace(input.Instructions) == "":
		return nil, apperrors.NewInvalidInputError("instructions are required")
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.refine")
	defer span.End()

	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:  h.config.Model,
		System: prompts.SystemInstruction,
		Prompt: prompts.Refine(input.OriginalScript, input.Instructions),
	})
	if err != nil {
		return nil, err
	}

	// the prompt asks for plain text, but models still fence it sometimes
	content := llm.StripCodeFences(resp.Text)
	if content == "" {
		return nil, fmt.Errorf("%w: empty refinement", llm.ErrLLMResponseInvalid)
	}

	h.logger.Info("draft refined", map[string]interface{}{
		"originalLen": len(input.OriginalScript),
		"refinedLen":  len(content),
	})

	return &Output{Content: content}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
