// internal/workers/script-generation/retrieve-script-context/models.go
package retrievescriptcontext

import "scriptgen-workers/internal/knowledge"

type Input struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
}

type Output struct {
	Category      knowledge.Category      `json:"category"`
	ContextBundle knowledge.ContextBundle `json:"contextBundle"`
	RAGContext    string                  `json:"ragContext"`
}
