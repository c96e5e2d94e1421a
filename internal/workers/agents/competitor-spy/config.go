// internal/workers/agents/competitor-spy/config.go
package competitorspy

import "time"

type Config struct {
	// Model is used only when no agents endpoint is configured.
	Model   string
	Timeout time.Duration
}
