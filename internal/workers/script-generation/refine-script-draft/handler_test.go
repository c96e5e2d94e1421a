// internal/workers/script-generation/refine-script-draft/handler_test.go
package refinescriptdraft

import (
	"context"
	"testing"
	"time"

	apperrors "scriptgen-workers/internal/common/errors"
	"scriptgen-workers/internal/common/llm"
	"scriptgen-workers/internal/common/llm/llmtest"
	"scriptgen-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T, gen *llmtest.Fake) *Handler {
	return NewHandler(&Config{Model: "gemini-2.5-pro", Timeout: 10 * time.Second}, gen, nil, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"plain text", "  Okay, shorter version.\nBuy it.  ", "Okay, shorter version.\nBuy it."},
		{"fenced", "```\nShorter version.\n```", "Shorter version."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := llmtest.Text(tt.reply)
			h := createTestHandler(t, gen)

			out, err := h.Execute(context.Background(), &Input{
				OriginalScript: "Okay so this dress...",
				Instructions:   "make it shorter",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Content)

			req := gen.LastRequest()
			assert.Contains(t, req.Prompt, `"make it shorter"`)
			assert.False(t, req.JSON)
			assert.Nil(t, req.Schema)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		gen      *llmtest.Fake
		wantCode apperrors.ErrorCode
	}{
		{"no script", &Input{Instructions: "x"}, llmtest.Text("x"), apperrors.ErrCodeInvalidInput},
		{"no instructions", &Input{OriginalScript: "x", Instructions: " "}, llmtest.Text("x"), apperrors.ErrCodeInvalidInput},
		{"empty answer", &Input{OriginalScript: "x", Instructions: "y"}, llmtest.Text(""), apperrors.ErrCodeLLMResponseInvalid},
		{"timeout", &Input{OriginalScript: "x", Instructions: "y"}, llmtest.New(llmtest.Reply{Err: llm.ErrLLMTimeout}), apperrors.ErrCodeLLMTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createTestHandler(t, tt.gen).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.FromError(err).Code)
		})
	}
}
