// internal/workers/script-generation/retrieve-script-context/handler.go
package retrievescriptcontext

import (
	"context"

	"scriptgen-workers/internal/common/camunda"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/metrics"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/knowledge"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "retrieve-script-context"
)

type Handler struct {
	config    *Config
	retriever *knowledge.Retriever
	obs       *observability.Observability
	runner    *camunda.Runner
	logger    logger.Logger
}

func NewHandler(config *Config, retriever *knowledge.Retriever, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config:    config,
		retriever: retriever,
		obs:       obs,
		runner:    runner,
		logger:    runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

// execute never fails: classification falls back to general and every
// selector tolerates an empty query.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	_, span := h.obs.StartSpan(ctx, "knowledge.assemble_bundle")
	bundle := h.retriever.AssembleBundle(input.ProductName, input.ProductDescription)
	span.SetAttributes(
		attribute.String("category", string(bundle.Category)),
		attribute.Int("hooks", len(bundle.Hooks)),
		attribute.Int("viral_scripts", len(bundle.ViralScripts)),
	)
	span.End()

	category := string(bundle.Category)
	metrics.ContextCategoryTotal.WithLabelValues(category).Inc()
	metrics.ContextBundleItems.WithLabelValues("hooks").Observe(float64(len(bundle.Hooks)))
	metrics.ContextBundleItems.WithLabelValues("viral_scripts").Observe(float64(len(bundle.ViralScripts)))
	metrics.ContextBundleItems.WithLabelValues("insights").Observe(float64(len(bundle.Insights)))
	h.obs.RecordBundle(ctx, category)

	h.logger.Info("context bundle assembled", map[string]interface{}{
		"productName":  input.ProductName,
		"category":     category,
		"hookCount":    len(bundle.Hooks),
		"scriptCount":  len(bundle.ViralScripts),
		"insightCount": len(bundle.Insights),
	})

	return &Output{
		Category:      bundle.Category,
		ContextBundle: bundle,
		RAGContext:    knowledge.Render(bundle),
	}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
