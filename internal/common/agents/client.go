// internal/common/agents/client.go
package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/metrics"
	"scriptgen-workers/internal/models"
)

// Webhook paths under {base}/webhook/.
const (
	WorkflowOrchestrator   = "tiktok-script-generate"
	WorkflowPolish         = "polish-agent"
	WorkflowViralRepurpose = "viral-repurpose"
	WorkflowCompetitorSpy  = "competitor-spy"
)

var (
	ErrWebhookFailed  = errors.New("AGENT_WEBHOOK_FAILED")
	ErrWebhookTimeout = errors.New("AGENT_WEBHOOK_TIMEOUT")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     logger.Logger
}

func NewClient(cfg config.AgentsConfig, log logger.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("agents.base_url must be an absolute URL, got %q", cfg.BaseURL)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// no client timeout: every call carries the job context
		httpClient: &http.Client{},
		maxRetries: cfg.MaxRetries,
		logger:     log.With(map[string]interface{}{"component": "agents"}),
	}, nil
}

type GenerateRequest struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	VideoLength        string `json:"videoLength"`
	IsFaceless         bool   `json:"isFaceless"`
}

type AgentHook struct {
	Text      string `json:"text"`
	Type      string `json:"type"`
	Trigger   string `json:"trigger"`
	Framework string `json:"framework"`
}

// ScriptsResponse is the orchestrator result with defaults applied.
type ScriptsResponse struct {
	Category        string               `json:"category"`
	VoiceProfile    string               `json:"voiceProfile"`
	ResearchSummary string               `json:"researchSummary"`
	Hooks           []AgentHook          `json:"hooks"`
	Scripts         []models.ScriptDraft `json:"scripts"`
}

type FinalizeRequest struct {
	ScriptID      int    `json:"scriptId"`
	ScriptContent string `json:"scriptContent"`
	ProductName   string `json:"productName"`
	Category      string `json:"category"`
	Framework     string `json:"framework"`
	IsFaceless    bool   `json:"isFaceless"`
}

type ViralRequest struct {
	VideoURL      string `json:"videoUrl,omitempty"`
	VideoFile     string `json:"videoFile,omitempty"` // base64
	TargetProduct string `json:"targetProduct,omitempty"`
}

type CompetitorRequest struct {
	TiktokHandle string `json:"tiktokHandle,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
}

type CompetitorReport struct {
	Success    bool                      `json:"success"`
	Insights   models.CompetitorInsights `json:"insights"`
	AnalyzedAt string                    `json:"analyzedAt"`
}

// Health is the reachability of each agent workflow.
type Health struct {
	Healthy   bool            `json:"healthy"`
	Workflows map[string]bool `json:"workflows"`
}

func (c *Client) GenerateScripts(ctx context.Context, req GenerateRequest) (*ScriptsResponse, error) {
	var raw struct {
		Category     string `json:"category"`
		VoiceProfile string `json:"voiceProfile"`
		ResearchData *struct {
			Summary string `json:"summary"`
		} `json:"researchData"`
		Hooks   []AgentHook          `json:"hooks"`
		Scripts []models.ScriptDraft `json:"scripts"`
	}
	if err := c.post(ctx, WorkflowOrchestrator, req, &raw); err != nil {
		return nil, err
	}

	resp := &ScriptsResponse{
		Category:        raw.Category,
		VoiceProfile:    raw.VoiceProfile,
		ResearchSummary: "Market research complete",
		Hooks:           raw.Hooks,
		Scripts:         raw.Scripts,
	}
	if resp.Category == "" {
		resp.Category = "general"
	}
	if resp.VoiceProfile == "" {
		resp.VoiceProfile = "default"
	}
	if raw.ResearchData != nil && raw.ResearchData.Summary != "" {
		resp.ResearchSummary = raw.ResearchData.Summary
	}
	if resp.Hooks == nil {
		resp.Hooks = []AgentHook{}
	}
	if resp.Scripts == nil {
		resp.Scripts = []models.ScriptDraft{}
	}
	return resp, nil
}

func (c *Client) FinalizeScript(ctx context.Context, req FinalizeRequest) (*models.FinalScript, error) {
	var out models.FinalScript
	if err := c.post(ctx, WorkflowPolish, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AnalyzeViralVideo(ctx context.Context, req ViralRequest) (*models.ViralRepurpose, error) {
	var out models.ViralRepurpose
	if err := c.post(ctx, WorkflowViralRepurpose, req, &out); err != nil {
		return nil, err
	}
	if out.Variations == nil {
		out.Variations = []models.ScriptVariation{}
	}
	if out.ViralElements == nil {
		out.ViralElements = []string{}
	}
	return &out, nil
}

func (c *Client) AnalyzeCompetitor(ctx context.Context, req CompetitorRequest) (*CompetitorReport, error) {
	var raw struct {
		Success    *bool                     `json:"success"`
		Insights   models.CompetitorInsights `json:"insights"`
		AnalyzedAt string                    `json:"analyzedAt"`
	}
	if err := c.post(ctx, WorkflowCompetitorSpy, req, &raw); err != nil {
		return nil, err
	}

	report := &CompetitorReport{
		Success:    raw.Success == nil || *raw.Success,
		Insights:   raw.Insights,
		AnalyzedAt: raw.AnalyzedAt,
	}
	if report.AnalyzedAt == "" {
		report.AnalyzedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return report, nil
}

// CheckHealth probes the orchestrator and the polish agent once each. A
// working orchestrator implies its research, hooks and writer sub-agents work.
func (c *Client) CheckHealth(ctx context.Context) Health {
	workflows := map[string]bool{
		"orchestrator": false,
		"research":     false,
		"hooks":        false,
		"writer":       false,
		"polish":       false,
	}

	if c.probe(ctx, WorkflowOrchestrator, GenerateRequest{
		ProductName:        "Test Product",
		ProductDescription: "Health check test",
		VideoLength:        "short",
	}) {
		workflows["orchestrator"] = true
		workflows["research"] = true
		workflows["hooks"] = true
		workflows["writer"] = true
	}

	workflows["polish"] = c.probe(ctx, WorkflowPolish, FinalizeRequest{
		ScriptID:      1,
		ScriptContent: "Test script",
		ProductName:   "Test",
		Category:      "fashion",
		Framework:     "PAS",
	})

	healthy := true
	for _, ok := range workflows {
		healthy = healthy && ok
	}
	return Health{Healthy: healthy, Workflows: workflows}
}

func (c *Client) probe(ctx context.Context, workflow string, payload interface{}) bool {
	status, _, err := c.send(ctx, workflow, payload)
	return err == nil && status >= 200 && status < 300
}

func (c *Client) post(ctx context.Context, workflow string, payload, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				metrics.AgentWebhookRequests.WithLabelValues(workflow, "timeout").Inc()
				return ErrWebhookTimeout
			}
		}

		status, body, err := c.send(ctx, workflow, payload)
		if err != nil {
			if ctx.Err() != nil {
				metrics.AgentWebhookRequests.WithLabelValues(workflow, "timeout").Inc()
				return ErrWebhookTimeout
			}
			lastErr = err
			c.logAttempt(workflow, attempt, err)
			continue
		}

		if status >= 200 && status < 300 {
			metrics.AgentWebhookRequests.WithLabelValues(workflow, "ok").Inc()
			if out == nil || len(bytes.TrimSpace(body)) == 0 {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: %s: decode response: %v", ErrWebhookFailed, workflow, err)
			}
			return nil
		}

		lastErr = fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
		if status < 500 && status != http.StatusTooManyRequests {
			break
		}
		c.logAttempt(workflow, attempt, lastErr)
	}

	metrics.AgentWebhookRequests.WithLabelValues(workflow, "error").Inc()
	return fmt.Errorf("%w: %s: %v", ErrWebhookFailed, workflow, lastErr)
}

func (c *Client) send(ctx context.Context, workflow string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/webhook/"+workflow, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) logAttempt(workflow string, attempt int, err error) {
	c.logger.Warn("agent webhook attempt failed", map[string]interface{}{
		"workflow": workflow,
		"attempt":  attempt + 1,
		"error":    err.Error(),
	})
}
