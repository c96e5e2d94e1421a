// internal/workers/agents/repurpose-viral-video/config.go
package repurposeviralvideo

import "time"

type Config struct {
	Model       string
	Temperature float32
	Timeout     time.Duration
}
