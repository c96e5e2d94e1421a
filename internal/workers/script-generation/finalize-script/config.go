// internal/workers/script-generation/finalize-script/config.go
package finalizescript

import "time"

type Config struct {
	Model   string
	Timeout time.Duration
}
