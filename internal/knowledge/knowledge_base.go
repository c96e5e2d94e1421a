// internal/knowledge/knowledge_base.go
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"scriptgen-workers/internal/common/validation"
)

//go:embed data/knowledge.yaml
var defaultDataset []byte

var ErrInvalidKnowledgeBase = errors.New("KNOWLEDGE_BASE_INVALID")

// KnowledgeBase holds the static reference tables. It is built once and
// shared read-only by every Retriever.
type KnowledgeBase struct {
	Voice        VoiceProfile        `yaml:"voice" json:"voice"`
	Hooks        []HookCategory      `yaml:"hooks" json:"hooks"`
	ViralScripts []ViralScriptEntry  `yaml:"viral_scripts" json:"viralScripts"`
	Insights     []CompetitorInsight `yaml:"competitor_insights" json:"insights"`
}

const knowledgeBaseSchema = `{
  "type": "object",
  "required": ["voice", "hooks", "viralScripts", "insights"],
  "definitions": {
    "category": {"enum": ["fashion", "beauty", "home", "tech", "pet", "fitness", "general"]},
    "nonEmptyStrings": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
  },
  "properties": {
    "voice": {
      "type": "object",
      "required": ["characteristics", "languagePatterns", "structureRules"],
      "properties": {
        "characteristics": {"$ref": "#/definitions/nonEmptyStrings"},
        "structureRules": {"$ref": "#/definitions/nonEmptyStrings"},
        "languagePatterns": {
          "type": "object",
          "required": ["mustUse", "avoid"],
          "properties": {
            "mustUse": {"$ref": "#/definitions/nonEmptyStrings"},
            "avoid": {"$ref": "#/definitions/nonEmptyStrings"}
          }
        }
      }
    },
    "hooks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "examples"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "delivery": {"enum": ["", "verbal", "visual", "text-overlay"]},
          "categories": {"type": ["array", "null"], "items": {"$ref": "#/definitions/category"}},
          "examples": {"$ref": "#/definitions/nonEmptyStrings"}
        }
      }
    },
    "viralScripts": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "category", "scriptText"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "category": {"$ref": "#/definitions/category"},
          "scriptText": {"type": "string", "minLength": 1},
          "tags": {"type": ["array", "null"], "items": {"type": "string"}}
        }
      }
    },
    "insights": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id", "category", "insight", "trendStatus"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "category": {"$ref": "#/definitions/category"},
          "insight": {"type": "string", "minLength": 1},
          "trendStatus": {"enum": ["emerging", "peak", "declining"]}
        }
      }
    }
  }
}`

var kbSchema = validation.MustCompile("knowledge-base", knowledgeBaseSchema)

// Default returns the embedded dataset.
func Default() (*KnowledgeBase, error) {
	return Parse(defaultDataset)
}

// MustDefault panics if the embedded dataset does not parse.
func MustDefault() *KnowledgeBase {
	kb, err := Default()
	if err != nil {
		panic(err)
	}
	return kb
}

// Load reads a dataset from path, or the embedded one when path is empty.
func Load(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidKnowledgeBase, err)
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return &kb, nil
}

// Validate checks the dataset shape and that ids are unique per table.
func (kb *KnowledgeBase) Validate() error {
	res, err := kbSchema.Validate(kb)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}

	seen := make(map[string]struct{})
	check := func(table, id string) error {
		key := table + "/" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidKnowledgeBase, table, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, h := range kb.Hooks {
		if err := check("hook", h.ID); err != nil {
			return err
		}
	}
	for _, s := range kb.ViralScripts {
		if err := check("viral script", s.ID); err != nil {
			return err
		}
	}
	for _, in := range kb.Insights {
		if err := check("insight", in.ID); err != nil {
			return err
		}
	}
	return nil
}
