// internal/workers/agents/repurpose-viral-video/handler.go
package repurposeviralvideo

import (
	"context"
	"fmt"
	"strings"

	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/models"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "repurpose-viral-video"
)

type Handler struct {
	config    *Config
	agents    *agents.Client
	generator llm.Generator
	obs       *observability.Observability
	runner    *camunda.Runner
	logger    logger.Logger
}

func NewHandler(config *Config, client *agents.Client, generator llm.Generator, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config:    config,
		agents:    client,
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
	if h.agents != nil {
		return h.fromAgents(ctx, input)
	}
	return h.fromModel(ctx, input)
}

func (h *Handler) fromAgents(ctx context.Context, input *Input) (*Output, error) {
	videoURL := strings.TrimSpace(input.VideoURL)
	if videoURL == "" && input.VideoFile == "" {
		return nil, apperrors.NewInvalidInputError("videoUrl or videoFile is required")
	}
	if videoURL != "" && !agents.IsValidTikTokURL(videoURL) {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("videoUrl %q is not a TikTok video link", videoURL))
	}

	ctx, span := h.obs.StartSpan(ctx, "agents."+agents.WorkflowViralRepurpose,
		attribute.Bool("with_file", input.VideoFile != ""),
	)
	defer span.End()

	report, err := h.agents.AnalyzeViralVideo(ctx, agents.ViralRequest{
		VideoURL:      videoURL,
		VideoFile:     input.VideoFile,
		TargetProduct: input.TargetProduct,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("viral video repurposed", map[string]interface{}{
		"videoUrl":       videoURL,
		"variationCount": len(report.Variations),
	})

	return &Output{Source: SourceAgents, Report: report, Scripts: []models.ScriptDraft{}}, nil
}

func (h *Handler) fromModel(ctx context.Context, input *Input) (*Output, error) {
	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return nil, apperrors.NewInvalidInputError("transcript is required when no agents endpoint is configured")
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.viral_repurpose", attribute.String("model", h.config.Model))
	defer span.End()

	temperature := h.config.Temperature
	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:       h.config.Model,
		System:      prompts.SystemInstruction,
		Prompt:      prompts.ViralRepurpose(transcript),
		Temperature: &temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	var answer modelAnswer
	if err := llm.DecodeJSON(resp.Text, &answer); err != nil {
		return nil, fmt.Errorf("%w: viral repurpose: %v", llm.ErrLLMResponseInvalid, err)
	}
	if len(answer.Scripts) == 0 {
		return nil, fmt.Errorf("%w: viral repurpose returned no scripts", llm.ErrLLMResponseInvalid)
	}

	h.logger.Info("viral script iterated", map[string]interface{}{
		"transcriptLen": len(transcript),
		"scriptCount":   len(answer.Scripts),
	})

	return &Output{Source: SourceLLM, Analysis: answer.Analysis, Scripts: answer.Scripts}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
