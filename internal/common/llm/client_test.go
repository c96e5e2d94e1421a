package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"scriptgen-workers/internal/common/config"
	"scriptgen-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := newClient(context.Background(), config.GenAIConfig{
		APIKey:     "test-key",
		MaxRetries: maxRetries,
	}, server.URL, logger.NewTestLogger(t))
	require.NoError(t, err)
	return c
}

const groundedResponse = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "Shoppers love the fabric."}]},
    "groundingMetadata": {
      "groundingChunks": [
        {"web": {"uri": "https://example.com/a", "title": "A"}},
        {"web": {"uri": "https://example.com/b", "title": "B"}}
      ]
    }
  }]
}`

// ==========================
// Client
// ==========================

func TestClient_Generate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, groundedResponse)
	}, 0)

	resp, err := c.Generate(context.Background(), Request{
		Model:  "gemini-2.5-flash",
		Prompt: "research this",
		Search: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shoppers love the fabric.", resp.Text)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, resp.SourceURLs)
}

func TestClient_Generate_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error": {"code": 503, "message": "overloaded", "status": "UNAVAILABLE"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, groundedResponse)
	}, 3)

	resp, err := c.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"code": 400, "message": "bad request", "status": "INVALID_ARGUMENT"}}`)
	}, 3)

	_, err := c.Generate(context.Background(), Request{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, ErrLLMGenerationFailed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Generate_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, Request{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, ErrLLMTimeout)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.GenAIConfig{}, logger.NewNoOpLogger())
	assert.Error(t, err)
}

// ==========================
// Request building
// ==========================

func TestBuildConfig(t *testing.T) {
	temp := float32(0.3)
	cfg := buildConfig(Request{
		System:         "be brief",
		Temperature:    &temp,
		JSON:           true,
		Search:         true,
		ThinkingBudget: 1024,
	})

	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.Len(t, cfg.Tools, 1)
	assert.NotNil(t, cfg.Tools[0].GoogleSearch)
	require.NotNil(t, cfg.ThinkingConfig)
	assert.Equal(t, int32(1024), *cfg.ThinkingConfig.ThinkingBudget)

	schema := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	withSchema := buildConfig(Request{Schema: schema})
	assert.Equal(t, "application/json", withSchema.ResponseMIMEType)
	assert.Same(t, schema, withSchema.ResponseSchema)

	plain := buildConfig(Request{})
	assert.Nil(t, plain.SystemInstruction)
	assert.Empty(t, plain.Tools)
	assert.Nil(t, plain.ThinkingConfig)
}

func TestBuildContent_Image(t *testing.T) {
	content := buildContent(Request{Prompt: "describe", Image: &Image{Data: []byte{0xff, 0xd8}}})
	require.Len(t, content.Parts, 2)
	assert.Equal(t, "describe", content.Parts[0].Text)
	require.NotNil(t, content.Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", content.Parts[1].InlineData.MIMEType)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(errors.New("connection reset")))
	assert.True(t, retryable(genai.APIError{Code: 503}))
	assert.True(t, retryable(genai.APIError{Code: 429}))
	assert.False(t, retryable(genai.APIError{Code: 400}))
}

// ==========================
// JSON helpers
// ==========================

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`[{"a":1}]`, `[{"a":1}]`},
		{"```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```JSON\n{\"a\":1}```  ", `{"a":1}`},
		{"```{\"a\":1}```", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFences(tt.in))
	}
}

func TestDecodeJSON(t *testing.T) {
	var out map[string]int
	require.NoError(t, DecodeJSON("```json\n{\"a\": 1}\n```", &out))
	assert.Equal(t, 1, out["a"])

	assert.Error(t, DecodeJSON("not json", &out))
}

// ==========================
// Images
// ==========================

func TestDecodeImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	raw := base64.StdEncoding.EncodeToString(png)

	img, err := DecodeImage(raw, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, png, img.Data)

	img, err = DecodeImage("data:image/webp;base64,"+raw, "")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.MIMEType)

	img, err = DecodeImage(raw, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)

	img, err = DecodeImage("  ", "")
	assert.NoError(t, err)
	assert.Nil(t, img)

	_, err = DecodeImage("%%%not-base64", "")
	assert.Error(t, err)
}

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare array", `[{"id":1}]`, `[{"id":1}]`, false},
		{"fenced array", "```json\n[1,2]\n```", `[1,2]`, false},
		{"wrapped", `{"note":"x","scripts":[{"id":1}],"other":[2]}`, `[{"id":1}]`, false},
		{"object without array", `{"a":1}`, "", true},
		{"scalar", `42`, "", true},
		{"empty", "  ", "", true},
		{"invalid", `[{"id":`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractArray(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLLMResponseInvalid)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
