// internal/workers/library/save-script/models.go
package savescript

import "scriptgen-workers/internal/models"

// Input takes the script body either as Content or from a finalized script;
// explicit fields win over the final script's.
type Input struct {
	Title       string                     `json:"title"`
	ProductName string                     `json:"productName"`
	Category    string                     `json:"category"`
	Framework   string                     `json:"framework"`
	Thumbnail   string                     `json:"thumbnail"`
	Content     string                     `json:"content"`
	Metrics     *models.SavedScriptMetrics `json:"metrics"`
	FinalScript *models.FinalScript        `json:"finalScript"`
}

type Output struct {
	Script models.SavedScript `json:"script"`
}
