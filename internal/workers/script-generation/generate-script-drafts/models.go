// internal/workers/script-generation/generate-script-drafts/models.go
package generatescriptdrafts

import "scriptgen-workers/internal/models"

type Input struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	VideoLength        string `json:"videoLength"`
	ResearchSummary    string `json:"researchSummary"`
	IsFaceless         bool   `json:"isFaceless"`

	// Set when an upstream retrieve-script-context step already ran.
	Category   string `json:"category,omitempty"`
	RAGContext string `json:"ragContext,omitempty"`
}

type Output struct {
	Category  string               `json:"category"`
	Scripts   []models.ScriptDraft `json:"scripts"`
	HookTypes []string             `json:"hookTypes"`
}
