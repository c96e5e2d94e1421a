// internal/workers/agents/competitor-spy/handler.go
package competitorspy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/knowledge"
	"scriptgen-workers/internal/models"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "competitor-spy"
)

type Handler struct {
	config    *Config
	agents    *agents.Client
	generator llm.Generator
	retriever *knowledge.Retriever
	obs       *observability.Observability
	runner    *camunda.Runner
	logger    logger.Logger
	now       func() time.Time
}

// NewHandler builds the worker. A nil agents client switches it to the
// direct model analysis.
func NewHandler(config *Config, client *agents.Client, generator llm.Generator, retriever *knowledge.Retriever, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config:    config,
		agents:    client,
		generator: generator,
		retriever: retriever,
		obs:       obs,
		runner:    runner,
		logger:    runner.Logger(),
		now:       time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	handle := agents.NormalizeTikTokHandle(input.TiktokHandle)
	videoURL := strings.TrimSpace(input.VideoURL)

	if handle == "" && videoURL == "" {
		return nil, apperrors.NewInvalidInputError("tiktokHandle or videoUrl is required")
	}
	if videoURL != "" && !agents.IsValidTikTokURL(videoURL) {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("videoUrl %q is not a TikTok video link", videoURL))
	}

	if h.agents != nil {
		return h.fromAgents(ctx, handle, videoURL)
	}
	return h.fromModel(ctx, handle, videoURL)
}

func (h *Handler) fromAgents(ctx context.Context, handle, videoURL string) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, "agents."+agents.WorkflowCompetitorSpy)
	defer span.End()

	report, err := h.agents.AnalyzeCompetitor(ctx, agents.CompetitorRequest{
		TiktokHandle: handle,
		VideoURL:     videoURL,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("competitor report received", map[string]interface{}{
		"handle":  handle,
		"success": report.Success,
	})

	return &Output{Source: SourceAgents, Report: report, AnalyzedAt: report.AnalyzedAt}, nil
}

func (h *Handler) fromModel(ctx context.Context, handle, videoURL string) (*Output, error) {
	target := videoURL
	if handle != "" {
		target = "@" + handle
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.competitor_analysis", attribute.String("model", h.config.Model))
	defer span.End()

	persona := knowledge.PersonaString(h.retriever.VoiceGuidance(knowledge.CategoryGeneral))
	// search grounding and JSON response mode cannot be combined, so the
	// JSON is parsed out of the text answer
	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:  h.config.Model,
		System: prompts.SystemInstruction,
		Prompt: prompts.CompetitorAnalysis(target, persona),
		Search: true,
	})
	if err != nil {
		return nil, err
	}

	var analysis models.CompetitorAnalysis
	if err := llm.DecodeJSON(resp.Text, &analysis); err != nil {
		return nil, fmt.Errorf("%w: competitor analysis: %v", llm.ErrLLMResponseInvalid, err)
	}
	if analysis.SuccessfulPatterns == nil {
		analysis.SuccessfulPatterns = []models.CompetitorPattern{}
	}
	if analysis.Opportunities == nil {
		analysis.Opportunities = []string{}
	}

	h.logger.Info("competitor analysis generated", map[string]interface{}{
		"target":       target,
		"patternCount": len(analysis.SuccessfulPatterns),
	})

	return &Output{
		Source:     SourceLLM,
		Analysis:   &analysis,
		AnalyzedAt: h.now().UTC().Format(time.RFC3339),
	}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
