// internal/workers/script-generation/finalize-script/handler.go
package finalizescript

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/common/validation"
	"scriptgen-workers/internal/models"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"google.golang.org/genai"
)

const (
	TaskType = "finalize-script"
)

var finalFields = []string{
	"verbalHook", "visualHook", "onScreenHook", "fullScript",
	"additionalText", "caption", "hashtags", "notes",
}

var finalSchema = validation.MustCompile("final-script", `{
  "type": "object",
  "required": ["verbalHook", "visualHook", "onScreenHook", "fullScript", "additionalText", "caption", "hashtags", "notes"],
  "properties": {
    "verbalHook":     {"type": "string"},
    "visualHook":     {"type": "string"},
    "onScreenHook":   {"type": "string"},
    "fullScript":     {"type": "string", "minLength": 1},
    "additionalText": {"type": "string"},
    "caption":        {"type": "string"},
    "hashtags":       {"type": "array", "items": {"type": "string"}},
    "notes":          {"type": "string"}
  }
}`)

var responseSchema = func() *genai.Schema {
	props := make(map[string]*genai.Schema, len(finalFields))
	for _, f := range finalFields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	props["hashtags"] = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: finalFields}
}()

type Handler struct {
	config    *Config
	generator llm.Generator
	agents    *agents.Client
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

// WithAgents lets jobs with useAgents set go through the polish agent.
func (h *Handler) WithAgents(client *agents.Client) *Handler {
	h.agents = client
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Script.Content) == "" {
		return nil, apperrors.NewInvalidInputError("script.content is required")
	}

	if input.UseAgents {
		if h.agents != nil {
			return h.polish(ctx, input)
		}
		h.logger.Warn("useAgents requested but no agents endpoint is configured, using the model", map[string]interface{}{
			"scriptId": input.Script.ID,
		})
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.finalize")
	defer span.End()

	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:  h.config.Model,
		System: prompts.SystemInstruction,
		Prompt: prompts.Finalize(input.Script.Content, input.ProductName, input.IsFaceless),
		Schema: responseSchema,
	})
	if err != nil {
		return nil, err
	}

	final, err := parseFinalScript(resp.Text)
	if err != nil {
		return nil, err
	}
	final.ID = input.Script.ID
	final.Framework = input.Script.Framework

	h.logger.Info("script finalized", map[string]interface{}{
		"scriptId":     final.ID,
		"framework":    final.Framework,
		"hashtagCount": len(final.Hashtags),
	})

	return &Output{FinalScript: *final}, nil
}

func (h *Handler) polish(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, "agents."+agents.WorkflowPolish)
	defer span.End()

	category := input.Category
	if category == "" {
		category = "general"
	}
	final, err := h.agents.FinalizeScript(ctx, agents.FinalizeRequest{
		ScriptID:      input.Script.ID,
		ScriptContent: input.Script.Content,
		ProductName:   input.ProductName,
		Category:      category,
		Framework:     input.Script.Framework,
		IsFaceless:    input.IsFaceless,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(final.FullScript) == "" {
		return nil, fmt.Errorf("%w: polish agent returned no fullScript", agents.ErrWebhookFailed)
	}
	final.ID = input.Script.ID
	final.Framework = input.Script.Framework
	if final.Hashtags == nil {
		final.Hashtags = []string{}
	}

	h.logger.Info("script polished by agent", map[string]interface{}{
		"scriptId":  final.ID,
		"framework": final.Framework,
	})

	return &Output{FinalScript: *final}, nil
}

func parseFinalScript(text string) (*models.FinalScript, error) {
	raw := []byte(llm.StripCodeFences(text))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response", llm.ErrLLMResponseInvalid)
	}

	result, err := finalSchema.ValidateJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}

	var final models.FinalScript
	if err := json.Unmarshal(raw, &final); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}
	return &final, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
