// internal/workers/library/save-script/config.go
package savescript

import "time"

type Config struct {
	Timeout time.Duration
}
