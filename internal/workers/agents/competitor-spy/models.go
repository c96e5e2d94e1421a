// internal/workers/agents/competitor-spy/models.go
package competitorspy

import (
	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/models"
)

const (
	SourceAgents = "agents"
	SourceLLM    = "llm"
)

type Input struct {
	TiktokHandle string `json:"tiktokHandle"`
	VideoURL     string `json:"videoUrl"`
}

// Output carries exactly one of Report (agents workflow) or Analysis
// (direct model call), named by Source.
type Output struct {
	Source     string                     `json:"source"`
	Report     *agents.CompetitorReport   `json:"report,omitempty"`
	Analysis   *models.CompetitorAnalysis `json:"analysis,omitempty"`
	AnalyzedAt string                     `json:"analyzedAt"`
}
