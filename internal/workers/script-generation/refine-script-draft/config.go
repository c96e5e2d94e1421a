// internal/workers/script-generation/refine-script-draft/config.go
package refinescriptdraft

import "time"

type Config struct {
	Model   string
	Timeout time.Duration
}
