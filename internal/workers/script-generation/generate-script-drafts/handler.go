// internal/workers/script-generation/generate-script-drafts/handler.go
package generatescriptdrafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"scriptgen-workers/internal/common/camunda"
	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/common/validation"
	"scriptgen-workers/internal/knowledge"
	"scriptgen-workers/internal/models"
	"scriptgen-workers/internal/prompts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const (
	TaskType = "generate-script-drafts"

	defaultVideoLength = "30-60 seconds"
)

var (
	ErrDraftGenerationFailed = errors.New("DRAFT_GENERATION_FAILED")
)

var draftsSchema = validation.MustCompile("script-drafts", `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "framework", "hookStrategy", "content"],
    "properties": {
      "id":           {"type": "integer"},
      "title":        {"type": "string"},
      "framework":    {"type": "string"},
      "hookStrategy": {"type": "string"},
      "content":      {"type": "string", "minLength": 1}
    }
  }
}`)

// responseSchema mirrors draftsSchema for the model's structured output.
var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":           {Type: genai.TypeInteger},
			"title":        {Type: genai.TypeString},
			"framework":    {Type: genai.TypeString},
			"hookStrategy": {Type: genai.TypeString},
			"content":      {Type: genai.TypeString},
		},
		Required: []string{"id", "title", "framework", "hookStrategy", "content"},
	},
}

type Handler struct {
	config    *Config
	generator llm.Generator
	retriever *knowledge.Retriever
	obs       *observability.Observability
	runner    *camunda.Runner
	logger    logger.Logger
}

func NewHandler(config *Config, generator llm.Generator, retriever *knowledge.Retriever, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config:    config,
		generator: generator,
		retriever: retriever,
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

	category, ragContext, hookTypes := h.promptContext(input)

	length := input.VideoLength
	if strings.TrimSpace(length) == "" {
		length = defaultVideoLength
	}
	research := input.ResearchSummary
	if strings.TrimSpace(research) == "" {
		research = prompts.NoResearchFallback
	}

	ctx, span := h.obs.StartSpan(ctx, "llm.drafts",
		attribute.String("model", h.config.Model),
		attribute.String("category", category),
	)
	defer span.End()

	resp, err := h.generator.Generate(ctx, llm.Request{
		Model:  h.config.Model,
		System: prompts.SystemInstruction,
		Prompt: prompts.Draft(prompts.DraftParams{
			Product:    input.ProductName,
			Length:     length,
			Research:   research,
			IsFaceless: input.IsFaceless,
			RAGContext: ragContext,
		}),
		Schema:         responseSchema,
		ThinkingBudget: h.config.ThinkingBudget,
	})
	if err != nil {
		return nil, err
	}

	scripts, err := parseDrafts(resp.Text)
	if err != nil {
		return nil, err
	}

	h.logger.Info("script drafts generated", map[string]interface{}{
		"productName": input.ProductName,
		"category":    category,
		"draftCount":  len(scripts),
		"faceless":    input.IsFaceless,
	})

	return &Output{Category: category, Scripts: scripts, HookTypes: hookTypes}, nil
}

// promptContext uses the upstream rendered context when present and otherwise
// assembles a bundle in-process.
func (h *Handler) promptContext(input *Input) (string, string, []string) {
	if strings.TrimSpace(input.RAGContext) != "" {
		category := input.Category
		if category == "" {
			category = string(knowledge.ClassifyCategory(knowledge.ProductQuery{
				Name:        input.ProductName,
				Description: input.ProductDescription,
			}.Text()))
		}
		return category, input.RAGContext, []string{}
	}

	bundle := h.retriever.AssembleBundle(input.ProductName, input.ProductDescription)
	hookTypes := make([]string, 0, len(bundle.Hooks))
	for _, hook := range bundle.Hooks {
		hookTypes = append(hookTypes, hook.Type)
	}
	return string(bundle.Category), knowledge.Render(bundle), hookTypes
}

func parseDrafts(text string) ([]models.ScriptDraft, error) {
	raw, err := llm.ExtractArray(text)
	if err != nil {
		return nil, err
	}

	result, err := draftsSchema.ValidateJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}

	var scripts []models.ScriptDraft
	if err := json.Unmarshal(raw, &scripts); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrLLMResponseInvalid, err)
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("%w: no scripts found", ErrDraftGenerationFailed)
	}
	return scripts, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
