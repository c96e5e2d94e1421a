// internal/workers/script-generation/refine-script-draft/models.go
package refinescriptdraft

type Input struct {
	OriginalScript string `json:"originalScript"`
	Instructions   string `json:"instructions"`
}

type Output struct {
	Content string `json:"content"`
}
