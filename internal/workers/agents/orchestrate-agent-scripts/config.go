// internal/workers/agents/orchestrate-agent-scripts/config.go
package orchestrateagentscripts

import "time"

type Config struct {
	Timeout time.Duration
}
