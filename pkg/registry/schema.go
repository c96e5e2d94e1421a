// pkg/registry/schema.go
package registry

// ActivityRegistry is the on-disk catalogue of worker activities.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one job type a BPMN service task can reference.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
	Backends             []string               `json:"backends,omitempty"`
}

// Category directories under internal/workers.
const (
	CategoryScriptGeneration = "script-generation"
	CategoryAgents           = "agents"
	CategoryLibrary          = "library"
)

// Backends an activity needs at runtime. A worker whose backends are
// all unconfigured is not registered.
const (
	BackendGenAI  = "genai"
	BackendAgents = "agents"
	BackendRedis  = "redis"
)

var knownBackends = map[string]bool{
	BackendGenAI:  true,
	BackendAgents: true,
	BackendRedis:  true,
}
