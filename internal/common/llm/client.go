// internal/common/llm/client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/metrics"

	"google.golang.org/genai"
)

var (
	ErrLLMTimeout          = errors.New("LLM_TIMEOUT")
	ErrLLMGenerationFailed = errors.New("LLM_GENERATION_FAILED")
	ErrLLMResponseInvalid  = errors.New("LLM_RESPONSE_INVALID")
)

// Image is an optional inline product photo.
type Image struct {
	Data     []byte
	MIMEType string
}

type Request struct {
	Model          string
	System         string
	Prompt         string
	Image          *Image
	Temperature    *float32
	JSON           bool          // ask for application/json output
	Schema         *genai.Schema // optional response schema, implies JSON
	Search         bool          // enable Google Search grounding
	ThinkingBudget int32         // 0 leaves the model default
}

type Response struct {
	Text       string
	SourceURLs []string
}

// Generator is the text-generation dependency of every LLM worker.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Client calls the Gemini API through google.golang.org/genai.
type Client struct {
	models     *genai.Models
	maxRetries int
	logger     logger.Logger
}

func NewClient(ctx context.Context, cfg config.GenAIConfig, log logger.Logger) (*Client, error) {
	return newClient(ctx, cfg, "", log)
}

func newClient(ctx context.Context, cfg config.GenAIConfig, baseURL string, log logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai.api_key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		models:     client.Models,
		maxRetries: cfg.MaxRetries,
		logger:     log.With(map[string]interface{}{"component": "llm"}),
	}, nil
}

func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := []*genai.Content{buildContent(req)}
	gcfg := buildConfig(req)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrLLMTimeout
			}
		}

		start := time.Now()
		resp, err := c.models.GenerateContent(ctx, req.Model, contents, gcfg)
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.LLMRequestDuration.WithLabelValues(req.Model, status).Observe(time.Since(start).Seconds())

		if err == nil {
			return &Response{Text: resp.Text(), SourceURLs: groundingURLs(resp)}, nil
		}

		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLLMTimeout
		}

		lastErr = err
		if !retryable(err) {
			break
		}
		c.logger.Warn("generation attempt failed", map[string]interface{}{
			"model":   req.Model,
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return nil, fmt.Errorf("%w: %v", ErrLLMGenerationFailed, lastErr)
}

func buildContent(req Request) *genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil && len(req.Image.Data) > 0 {
		mime := req.Image.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, mime))
	}
	return genai.NewContentFromParts(parts, genai.RoleUser)
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	gcfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.System != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON || req.Schema != nil {
		gcfg.ResponseMIMEType = "application/json"
		gcfg.ResponseSchema = req.Schema
	}
	if req.Search {
		gcfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ThinkingBudget > 0 {
		gcfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(req.ThinkingBudget)}
	}
	return gcfg
}

func groundingURLs(resp *genai.GenerateContentResponse) []string {
	urls := []string{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return urls
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
			urls = append(urls, chunk.Web.URI)
		}
	}
	return urls
}

// retryable reports whether a failed call is worth repeating: rate limits,
// server errors and anything that is not an API error (transport).
func retryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return true
}
