// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	apperrors "scriptgen-workers/internal/common/errors"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

func SaveRegistry(reg *ActivityRegistry, path string) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Available reports whether at least one of the activity's backends is
// configured. Activities with no backends are always available.
func (a *Activity) Available(configured map[string]bool) bool {
	if len(a.Backends) == 0 {
		return true
	}
	for _, b := range a.Backends {
		if configured[b] {
			return true
		}
	}
	return false
}

func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks ids and task types are present and unique, timeouts parse,
// backends are known and every error code is one the workers can raise.
func (r *ActivityRegistry) Validate() error {
	ids := make(map[string]bool)
	types := make(map[string]bool)

	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			return fmt.Errorf("activity %q: id and taskType are required", a.DisplayName)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity id %s", a.ID)
		}
		if types[a.TaskType] {
			return fmt.Errorf("duplicate task type %s", a.TaskType)
		}
		ids[a.ID] = true
		types[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %s: bad timeout %q", a.ID, a.Timeout)
			}
		}
		for _, b := range a.Backends {
			if !knownBackends[b] {
				return fmt.Errorf("activity %s: unknown backend %s", a.ID, b)
			}
		}
		for _, code := range a.ErrorCodes {
			if !apperrors.IsKnownCode(code) {
				return fmt.Errorf("activity %s: unknown error code %s", a.ID, code)
			}
		}
	}
	return nil
}
