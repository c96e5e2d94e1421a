// internal/workers/script-generation/research-product/handler.go
package researchproduct

import (
	"context"
	"strings"

	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "research-product"
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
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperrors.NewInvalidInputError("productName is required")
	}

	image, err := llm.DecodeImage(input.ImageBase64, input.ImageMimeType)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.research",
		attribute.String("model", h.config.Model),
		attribute.Bool("with_image", image != nil),
	)
	defer span.End()

	temperature := h.config.Temperature
	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:       h.config.Model,
		System:      prompts.SystemInstruction,
		Prompt:      prompts.Research(input.ProductName, input.ProductDescription),
		Image:       image,
		Temperature: &temperature,
		Search:      true,
	})
	if err != nil {
		return nil, err
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		summary = prompts.NoResearchFallback
	}
	urls := topSources(resp.SourceURLs, h.config.MaxSources)

	h.logger.Info("product research completed", map[string]interface{}{
		"productName": input.ProductName,
		"summaryLen":  len(summary),
		"sourceCount": len(urls),
	})

	return &Output{Summary: summary, CompetitorURLs: urls}, nil
}

// topSources keeps the first limit distinct URLs in grounding order.
func topSources(urls []string, limit int) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, u := range urls {
		if len(out) >= limit {
			break
		}
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
