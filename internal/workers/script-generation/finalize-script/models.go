// internal/workers/script-generation/finalize-script/models.go
package finalizescript

import "scriptgen-workers/internal/models"

type Input struct {
	Script      models.ScriptDraft `json:"script"`
	ProductName string             `json:"productName"`
	Category    string             `json:"category"`
	IsFaceless  bool               `json:"isFaceless"`
	UseAgents   bool               `json:"useAgents"`
}

type Output struct {
	FinalScript models.FinalScript `json:"finalScript"`
}
