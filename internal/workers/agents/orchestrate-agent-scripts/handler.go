// internal/workers/agents/orchestrate-agent-scripts/handler.go
package orchestrateagentscripts

import (
	"context"
	"errors"
	"strings"

	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "orchestrate-agent-scripts"
)

var (
	ErrNoScripts = errors.New("DRAFT_GENERATION_FAILED: orchestrator returned no scripts")
)

type Handler struct {
	config *Config
	agents *agents.Client
	obs    *observability.Observability
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, client *agents.Client, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config: config,
		agents: client,
		obs:    obs,
		runner: runner,
		logger: runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperrors.NewInvalidInputError("productName is required")
	}

	ctx, span := h.obs.StartSpan(ctx, "agents."+agents.WorkflowOrchestrator)
	defer span.End()

	resp, err := h.agents.GenerateScripts(ctx, agents.GenerateRequest{
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		VideoLength:        input.VideoLength,
		IsFaceless:         input.IsFaceless,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Scripts) == 0 {
		return nil, ErrNoScripts
	}

	h.logger.Info("agent scripts generated", map[string]interface{}{
		"productName": input.ProductName,
		"category":    resp.Category,
		"scriptCount": len(resp.Scripts),
		"hookCount":   len(resp.Hooks),
	})

	return &Output{
		Category:        resp.Category,
		VoiceProfile:    resp.VoiceProfile,
		ResearchSummary: resp.ResearchSummary,
		Hooks:           resp.Hooks,
		Scripts:         resp.Scripts,
	}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
