// internal/workers/agents/repurpose-viral-video/models.go
package repurposeviralvideo

import "scriptgen-workers/internal/models"

const (
	SourceAgents = "agents"
	SourceLLM    = "llm"
)

type Input struct {
	VideoURL      string `json:"videoUrl"`
	VideoFile     string `json:"videoFile"` // base64, agents only
	Transcript    string `json:"transcript"`
	TargetProduct string `json:"targetProduct"`
}

// Output holds Report when the agents workflow ran, otherwise the model's
// Analysis and Scripts.
type Output struct {
	Source   string                 `json:"source"`
	Report   *models.ViralRepurpose `json:"report,omitempty"`
	Analysis string                 `json:"analysis,omitempty"`
	Scripts  []models.ScriptDraft   `json:"scripts"`
}

type modelAnswer struct {
	Analysis string               `json:"analysis"`
	Scripts  []models.ScriptDraft `json:"scripts"`
}
