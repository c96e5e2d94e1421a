// internal/workers/script-generation/generate-script-drafts/config.go
package generatescriptdrafts

import "time"

type Config struct {
	Model          string
	ThinkingBudget int32
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Model:          "gemini-2.5-pro",
		ThinkingBudget: 32768,
		Timeout:        180 * time.Second,
	}
}
