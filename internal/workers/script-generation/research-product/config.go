// internal/workers/script-generation/research-product/config.go
package researchproduct

import "time"

type Config struct {
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxSources  int
}

func LoadConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		Temperature: 0.3,
		Timeout:     120 * time.Second,
		MaxSources:  3,
	}
}
