// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"scriptgen-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Description  string
	Category     string
	InputFields  string
	OutputFields string
}

// parseSchema extracts properties from a JSON schema object
func parseSchema(schemaObj map[string]interface{}) map[string]interface{} {
	if props, ok := schemaObj["properties"].(map[string]interface{}); ok {
		return props
	}
	return map[string]interface{}{}
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// generateStructFields renders one field per property, sorted by name
func generateStructFields(properties map[string]interface{}) string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []string
	for _, name := range names {
		details, _ := properties[name].(map[string]interface{})
		fields = append(fields, fmt.Sprintf("\t%s %s `json:\"%s\"`",
			upperFirst(name), goTypeFromJSONType(details["type"]), name))
	}
	return strings.Join(fields, "\n")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{ .InputFields }}
}

type Output struct {
{{ .OutputFields }}
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"scriptgen-workers/internal/common/camunda"
	"scriptgen-workers/internal/common/logger"
	"scriptgen-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler: {{ .Description }}
type Handler struct {
	config *Config
	obs    *observability.Observability
	runner *camunda.Runner
	logger logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	runner := camunda.NewRunner(TaskType, config.Timeout, obs, log)
	return &Handler{
		config: config,
		obs:    obs,
		runner: runner,
		logger: runner.Logger(),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(h.runner, client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"scriptgen-workers/internal/common/logger"

	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, nil, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.NotNil(t, out)
}
`

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

func newWorkerData(a *registry.Activity) WorkerData {
	return WorkerData{
		Name:         a.DisplayName,
		PackageName:  strings.ReplaceAll(a.ID, "-", ""),
		TaskType:     a.TaskType,
		Description:  a.Description,
		Category:     a.Category,
		InputFields:  generateStructFields(parseSchema(a.InputSchema)),
		OutputFields: generateStructFields(parseSchema(a.OutputSchema)),
	}
}

// render executes every template and gofmts the result.
func render(data WorkerData) (map[string][]byte, error) {
	files := make(map[string][]byte, len(templates))
	for name, text := range templates {
		tmpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", name, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", name, err)
		}
		files[name] = src
	}
	return files, nil
}

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., save-script)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> --output <dir> [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/worker-generator/main.go --activity trend-scout")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	found, ok := reg.Find(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	files, err := render(newWorkerData(found))
	if err != nil {
		fmt.Printf("Error rendering worker: %v\n", err)
		os.Exit(1)
	}

	workerDir := filepath.Join(*outputDir, found.Category, found.ID)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for name, src := range files {
		path := filepath.Join(workerDir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("skip %s (exists)\n", path)
			continue
		}
		if err := os.WriteFile(path, src, 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("generated %s\n", path)
	}

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go\n")
	fmt.Printf("  2. Register the worker in cmd/worker-manager/main.go and pkg/registry\n")
	fmt.Printf("  3. Add its settings to configs/config.yaml\n")
}
