// internal/workers/script-generation/retrieve-script-context/config.go
package retrievescriptcontext

import "time"

type Config struct {
	Timeout time.Duration
}
