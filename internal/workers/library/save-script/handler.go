// internal/workers/library/save-script/handler.go
package savescript

import (
	"context"
	"strings"

	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/metrics"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/library"
	"scriptgen-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "save-script"
)

type Handler struct {
	config *Config
	store  *library.Store
	obs    *observability.Observability
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, store *library.Store, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config: config,
		store:  store,
		obs:    obs,
		runner: runner,
		logger: runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	script := buildScript(input)
	if strings.TrimSpace(script.Content) == "" {
		return nil, apperrors.NewInvalidInputError("content or finalScript.fullScript is required")
	}

	ctx, span := h.obs.StartSpan(ctx, "library.save", attribute.String("category", script.Category))
	defer span.End()

	saved, err := h.store.Save(ctx, script)
	if err != nil {
		return nil, err
	}
	metrics.LibraryScriptsSaved.Inc()

	h.logger.Info("script saved to library", map[string]interface{}{
		"scriptId":    saved.ID,
		"productName": saved.ProductName,
		"category":    saved.Category,
	})

	return &Output{Script: *saved}, nil
}

func buildScript(input *Input) models.SavedScript {
	script := models.SavedScript{
		Title:       strings.TrimSpace(input.Title),
		ProductName: strings.TrimSpace(input.ProductName),
		Category:    input.Category,
		Framework:   input.Framework,
		Thumbnail:   input.Thumbnail,
		Content:     input.Content,
		Metrics:     models.SavedScriptMetrics{Views: "0", CTR: "0%", Sales: "0"},
	}

	if fs := input.FinalScript; fs != nil {
		if script.Content == "" {
			script.Content = fs.FullScript
		}
		if script.Framework == "" {
			script.Framework = fs.Framework
		}
		if script.Title == "" {
			script.Title = fs.VerbalHook
		}
	}
	if input.Metrics != nil {
		script.Metrics = *input.Metrics
	}

	if script.Category == "" {
		script.Category = "general"
	}
	if script.Title == "" {
		script.Title = script.ProductName
	}
	if script.Title == "" {
		script.Title = "Untitled Script"
	}
	return script
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
