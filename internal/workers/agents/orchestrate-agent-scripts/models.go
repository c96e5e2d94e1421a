// internal/workers/agents/orchestrate-agent-scripts/models.go
package orchestrateagentscripts

import (
	"scriptgen-workers/internal/common/agents"
	"scriptgen-workers/internal/models"
)

type Input struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	VideoLength        string `json:"videoLength"`
	IsFaceless         bool   `json:"isFaceless"`
}

type Output struct {
	Category        string               `json:"category"`
	VoiceProfile    string               `json:"voiceProfile"`
	ResearchSummary string               `json:"researchSummary"`
	Hooks           []agents.AgentHook   `json:"hooks"`
	Scripts         []models.ScriptDraft `json:"scripts"`
}
