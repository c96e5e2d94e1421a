// pkg/registry/catalogue.go
package registry

// Version of the built-in catalogue; bump when an activity contract changes.
const Version = "1.0.0"

func object(required []string, props map[string]string) map[string]interface{} {
	properties := make(map[string]interface{}, len(props))
	for name, typ := range props {
		properties[name] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"type":       "object",
		"required":   required,
		"properties": properties,
	}
}

var productInput = map[string]string{
	"productName":        "string",
	"productDescription": "string",
}

var backends = map[string][]string{
	"research-product":          {BackendGenAI},
	"generate-script-drafts":    {BackendGenAI},
	"finalize-script":           {BackendGenAI, BackendAgents},
	"refine-script-draft":       {BackendGenAI},
	"orchestrate-agent-scripts": {BackendAgents},
	"competitor-spy":            {BackendAgents, BackendGenAI},
	"repurpose-viral-video":     {BackendAgents, BackendGenAI},
	"save-script":               {BackendRedis},
}

// Builtin returns the activities this module implements.
func Builtin() *ActivityRegistry {
	reg := builtin()
	for i := range reg.Activities {
		a := &reg.Activities[i]
		a.Version = Version
		a.ImplementationStatus = "completed"
		a.Backends = backends[a.TaskType]
		if a.Workflows == nil {
			a.Workflows = []string{}
		}
	}
	return reg
}

func builtin() *ActivityRegistry {
	return &ActivityRegistry{
		Version: Version,
		Activities: []Activity{
			{
				ID:          "retrieve-script-context",
				DisplayName: "Retrieve Script Context",
				Description: "Classifies the product and assembles hooks, exemplar scripts and insights from the knowledge base",
				Category:    CategoryScriptGeneration,
				TaskType:    "retrieve-script-context",
				InputSchema: object([]string{}, productInput),
				OutputSchema: object([]string{"category", "contextBundle", "ragContext"}, map[string]string{
					"category": "string", "contextBundle": "object", "ragContext": "string",
				}),
				ErrorCodes: []string{"INVALID_INPUT"},
				Timeout:    "5s",
				Retries:    1,
				Workflows:  []string{"script-library"},
				Tags:       []string{"knowledge", "rag"},
			},
			{
				ID:          "research-product",
				DisplayName: "Research Product",
				Description: "Search-grounded market research on the product",
				Category:    CategoryScriptGeneration,
				TaskType:    "research-product",
				InputSchema: object([]string{"productName"}, map[string]string{
					"productName": "string", "productDescription": "string",
					"imageBase64": "string", "imageMimeType": "string",
				}),
				OutputSchema: object([]string{"summary", "competitorUrls"}, map[string]string{
					"summary": "string", "competitorUrls": "array",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED"},
				Timeout:    "2m",
				Retries:    3,
				Tags:       []string{"llm", "search"},
			},
			{
				ID:          "generate-script-drafts",
				DisplayName: "Generate Script Drafts",
				Description: "Writes three framework-tagged script drafts from research and knowledge context",
				Category:    CategoryScriptGeneration,
				TaskType:    "generate-script-drafts",
				InputSchema: object([]string{"productName"}, map[string]string{
					"productName": "string", "productDescription": "string", "videoLength": "string",
					"research": "string", "isFaceless": "boolean", "category": "string", "ragContext": "string",
				}),
				OutputSchema: object([]string{"category", "scripts", "hookTypes"}, map[string]string{
					"category": "string", "scripts": "array", "hookTypes": "array",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED", "LLM_RESPONSE_INVALID", "DRAFT_GENERATION_FAILED"},
				Timeout:    "3m",
				Retries:    3,
				Tags:       []string{"llm"},
			},
			{
				ID:          "finalize-script",
				DisplayName: "Finalize Script",
				Description: "Turns a draft into a shoot-ready script with hooks, caption and hashtags",
				Category:    CategoryScriptGeneration,
				TaskType:    "finalize-script",
				InputSchema: object([]string{"script"}, map[string]string{
					"script": "object", "productName": "string", "category": "string",
					"isFaceless": "boolean", "useAgents": "boolean",
				}),
				OutputSchema: object([]string{"finalScript"}, map[string]string{"finalScript": "object"}),
				ErrorCodes:   []string{"INVALID_INPUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED", "LLM_RESPONSE_INVALID", "AGENT_WEBHOOK_FAILED", "AGENT_WEBHOOK_TIMEOUT"},
				Timeout:      "2m",
				Retries:      3,
				Tags:         []string{"llm", "agents"},
			},
			{
				ID:          "refine-script-draft",
				DisplayName: "Refine Script Draft",
				Description: "Rewrites a draft following free-text instructions",
				Category:    CategoryScriptGeneration,
				TaskType:    "refine-script-draft",
				InputSchema: object([]string{"originalScript", "instructions"}, map[string]string{
					"originalScript": "string", "instructions": "string",
				}),
				OutputSchema: object([]string{"content"}, map[string]string{"content": "string"}),
				ErrorCodes:   []string{"INVALID_INPUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED", "LLM_RESPONSE_INVALID"},
				Timeout:      "1m",
				Retries:      3,
				Tags:         []string{"llm"},
			},
			{
				ID:          "orchestrate-agent-scripts",
				DisplayName: "Orchestrate Agent Scripts",
				Description: "Runs the multi-agent script workflow behind the orchestrator webhook",
				Category:    CategoryAgents,
				TaskType:    "orchestrate-agent-scripts",
				InputSchema: object([]string{"productName"}, map[string]string{
					"productName": "string", "productDescription": "string",
					"videoLength": "string", "isFaceless": "boolean",
				}),
				OutputSchema: object([]string{"category", "scripts"}, map[string]string{
					"category": "string", "voiceProfile": "string", "researchSummary": "string",
					"hooks": "array", "scripts": "array",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "AGENT_WEBHOOK_FAILED", "AGENT_WEBHOOK_TIMEOUT", "DRAFT_GENERATION_FAILED"},
				Timeout:    "5m",
				Retries:    2,
				Tags:       []string{"agents"},
			},
			{
				ID:          "competitor-spy",
				DisplayName: "Competitor Spy",
				Description: "Analyzes a TikTok creator or video through the agents workflow or a search-grounded model call",
				Category:    CategoryAgents,
				TaskType:    "competitor-spy",
				InputSchema: object([]string{}, map[string]string{"tiktokHandle": "string", "videoUrl": "string"}),
				OutputSchema: object([]string{"source", "analyzedAt"}, map[string]string{
					"source": "string", "report": "object", "analysis": "object", "analyzedAt": "string",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "AGENT_WEBHOOK_FAILED", "AGENT_WEBHOOK_TIMEOUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED", "LLM_RESPONSE_INVALID"},
				Timeout:    "5m",
				Retries:    2,
				Tags:       []string{"agents", "llm", "search"},
			},
			{
				ID:          "repurpose-viral-video",
				DisplayName: "Repurpose Viral Video",
				Description: "Deconstructs a viral video or transcript and writes new variations",
				Category:    CategoryAgents,
				TaskType:    "repurpose-viral-video",
				InputSchema: object([]string{}, map[string]string{
					"videoUrl": "string", "videoFile": "string", "transcript": "string", "targetProduct": "string",
				}),
				OutputSchema: object([]string{"source", "scripts"}, map[string]string{
					"source": "string", "report": "object", "analysis": "string", "scripts": "array",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "AGENT_WEBHOOK_FAILED", "AGENT_WEBHOOK_TIMEOUT", "LLM_TIMEOUT", "LLM_GENERATION_FAILED", "LLM_RESPONSE_INVALID"},
				Timeout:    "5m",
				Retries:    2,
				Tags:       []string{"agents", "llm"},
			},
			{
				ID:          "save-script",
				DisplayName: "Save Script",
				Description: "Stores a script in the Redis-backed script library",
				Category:    CategoryLibrary,
				TaskType:    "save-script",
				InputSchema: object([]string{}, map[string]string{
					"title": "string", "productName": "string", "category": "string", "framework": "string",
					"thumbnail": "string", "content": "string", "metrics": "object", "finalScript": "object",
				}),
				OutputSchema: object([]string{"script"}, map[string]string{"script": "object"}),
				ErrorCodes:   []string{"INVALID_INPUT", "LIBRARY_WRITE_FAILED"},
				Timeout:      "5s",
				Retries:      3,
				Workflows:    []string{"script-library"},
				Tags:         []string{"redis"},
			},
		},
	}
}
