// internal/workers/script-generation/research-product/models.go
package researchproduct

type Input struct {
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	ImageBase64        string `json:"imageBase64,omitempty"`
	ImageMimeType      string `json:"imageMimeType,omitempty"`
}

type Output struct {
	Summary        string   `json:"summary"`
	CompetitorURLs []string `json:"competitorUrls"`
}
