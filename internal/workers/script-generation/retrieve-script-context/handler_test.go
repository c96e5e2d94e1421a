// internal/workers/script-generation/retrieve-script-context/handler_test.go
package retrievescriptcontext

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"
	"scriptgen-workers/internal/knowledge"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T, obs *observability.Observability) *Handler {
	retriever := knowledge.NewRetriever(nil, knowledge.WithRandSource(knowledge.NewSeededSource(7)))
	return NewHandler(&Config{Timeout: 5 * time.Second}, retriever, obs, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name         string
		input        *Input
		wantCategory knowledge.Category
		wantInRAG    []string
	}{
		{
			name:         "fashion product",
			input:        &Input{ProductName: "Satin Slip Dress", ProductDescription: "true to size, stretchy fabric"},
			wantCategory: knowledge.CategoryFashion,
			wantInRAG:    []string{"PRODUCT CATEGORY: FASHION", "PROVEN VIRAL SCRIPTS:", "HOOK STRATEGIES:"},
		},
		{
			name:         "no category keyword",
			input:        &Input{ProductName: "Galaxy Star Projector", ProductDescription: "led night light for bedroom"},
			wantCategory: knowledge.CategoryGeneral,
			wantInRAG:    []string{"PRODUCT CATEGORY: GENERAL", "(none for this category)"},
		},
		{
			name:         "empty input",
			input:        &Input{},
			wantCategory: knowledge.CategoryGeneral,
			wantInRAG:    []string{"VOICE PROFILE:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, nil)

			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCategory, out.Category)
			assert.Equal(t, tt.wantCategory, out.ContextBundle.Category)
			assert.Equal(t, knowledge.BundleVersion, out.ContextBundle.Version)
			assert.LessOrEqual(t, len(out.ContextBundle.Hooks), knowledge.DefaultHookCount)
			for _, s := range tt.wantInRAG {
				assert.Contains(t, out.RAGContext, s)
			}
		})
	}
}

func TestHandler_Execute_OutputSerializesEmptySections(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{ProductName: "Galaxy Star Projector"})
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"viralScripts":[]`)
	assert.Contains(t, string(data), `"insights":[]`)
}

func TestHandler_Execute_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := observability.New("test", promclient.NewRegistry(), sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	h := createTestHandler(t, obs)
	_, err = h.Execute(context.Background(), &Input{ProductName: "Hydrating Lip Balm"})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "knowledge.assemble_bundle", spans[0].Name())

	var category string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "category" {
			category = kv.Value.AsString()
		}
	}
	assert.Equal(t, "beauty", category)
}
