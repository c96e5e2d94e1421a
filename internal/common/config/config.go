// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Redis     RedisConfig             `mapstructure:"redis"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	GenAI     GenAIConfig             `mapstructure:"genai"`
	Agents    AgentsConfig            `mapstructure:"agents"`
	Knowledge KnowledgeConfig         `mapstructure:"knowledge"`
	Library   LibraryConfig           `mapstructure:"library"`
	Logging   LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	HTTPPort    int    `mapstructure:"http_port"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
	DialTimeout  int `mapstructure:"dial_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Specific Configuration Sections ---

// GenAIConfig configures the hosted text-generation model.
type GenAIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	ResearchModel  string  `mapstructure:"research_model"`
	DraftModel     string  `mapstructure:"draft_model"`
	Temperature    float64 `mapstructure:"temperature"`
	ThinkingBudget int     `mapstructure:"thinking_budget"`
	Timeout        int     `mapstructure:"timeout"` // milliseconds
	MaxRetries     int     `mapstructure:"max_retries"`
}

// AgentsConfig points at the external workflow webhooks.
type AgentsConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	MaxRetries int    `mapstructure:"max_retries"`
}

type KnowledgeConfig struct {
	Path      string `mapstructure:"path"` // empty: embedded dataset
	HookCount int    `mapstructure:"hook_count"`
	Seed      uint64 `mapstructure:"seed"` // 0: random
}

type LibraryConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
	TTL       int    `mapstructure:"ttl"` // milliseconds, 0 keeps forever
	ListLimit int    `mapstructure:"list_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (w WorkerConfig) TimeoutDuration() time.Duration {
	return GetDuration(w.Timeout)
}
