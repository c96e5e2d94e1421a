// internal/knowledge/types.go
package knowledge

// BundleVersion tags the shape of ContextBundle handed to prompt assembly.
const BundleVersion = "v1"

// Category is a coarse product-domain tag used to narrow knowledge selection.
type Category string

const (
	CategoryFashion Category = "fashion"
	CategoryBeauty  Category = "beauty"
	CategoryHome    Category = "home"
	CategoryTech    Category = "tech"
	CategoryPet     Category = "pet"
	CategoryFitness Category = "fitness"
	CategoryGeneral Category = "general"
)

// Categories is the closed set of categories, general last.
var Categories = []Category{
	CategoryFashion,
	CategoryBeauty,
	CategoryHome,
	CategoryTech,
	CategoryPet,
	CategoryFitness,
	CategoryGeneral,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ProductQuery is the per-request input. It is never stored.
type ProductQuery struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Text joins name and description the way classification and scoring see them.
func (q ProductQuery) Text() string {
	return q.Name + " " + q.Description
}

type LanguagePatterns struct {
	MustUse []string `yaml:"must_use" json:"mustUse"`
	Avoid   []string `yaml:"avoid" json:"avoid"`
}

// VoiceProfile is the persona rule set applied to every generated script.
type VoiceProfile struct {
	Characteristics  []string         `yaml:"characteristics" json:"characteristics"`
	LanguagePatterns LanguagePatterns `yaml:"language_patterns" json:"languagePatterns"`
	StructureRules   []string         `yaml:"structure_rules" json:"structureRules"`
}

func (v VoiceProfile) clone() VoiceProfile {
	return VoiceProfile{
		Characteristics: cloneStrings(v.Characteristics),
		LanguagePatterns: LanguagePatterns{
			MustUse: cloneStrings(v.LanguagePatterns.MustUse),
			Avoid:   cloneStrings(v.LanguagePatterns.Avoid),
		},
		StructureRules: cloneStrings(v.StructureRules),
	}
}

// Hook delivery modes.
const (
	HookDeliveryVerbal      = "verbal"
	HookDeliveryVisual      = "visual"
	HookDeliveryTextOverlay = "text-overlay"
)

// HookCategory is a group of proven opening lines sharing one strategy.
// An empty Categories list means the group applies to every product.
type HookCategory struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Delivery    string     `yaml:"delivery" json:"delivery"`
	Tier        string     `yaml:"tier" json:"tier"`
	Categories  []Category `yaml:"categories" json:"categories"`
	Examples    []string   `yaml:"examples" json:"examples"`
}

// Universal reports whether the group carries no category restriction.
func (h HookCategory) Universal() bool {
	if len(h.Categories) == 0 {
		return true
	}
	for _, c := range h.Categories {
		if c == CategoryGeneral {
			return true
		}
	}
	return false
}

func (h HookCategory) appliesTo(category Category) bool {
	if h.Universal() {
		return true
	}
	for _, c := range h.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SelectedHook is one chosen hook group with all of its examples.
// Type carries the group's display name.
type SelectedHook struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Delivery    string   `json:"delivery"`
	Examples    []string `json:"examples"`
}

type ScriptMetrics struct {
	Views          string `yaml:"views" json:"views"`
	CompletionRate string `yaml:"completion_rate" json:"completionRate"`
	Sales          string `yaml:"sales" json:"sales"`
}

// ViralScriptEntry is a sample script with fixed, descriptive performance data.
type ViralScriptEntry struct {
	ID          string        `yaml:"id" json:"id"`
	Category    Category      `yaml:"category" json:"category"`
	ProductName string        `yaml:"product_name" json:"productName"`
	ScriptText  string        `yaml:"script_text" json:"scriptText"`
	Metrics     ScriptMetrics `yaml:"metrics" json:"metrics"`
	Framework   string        `yaml:"framework" json:"framework"`
	Tags        []string      `yaml:"tags" json:"tags"`
}

// Trend statuses for competitor insights.
const (
	TrendEmerging  = "emerging"
	TrendPeak      = "peak"
	TrendDeclining = "declining"
)

type CompetitorInsight struct {
	ID          string   `yaml:"id" json:"id"`
	Category    Category `yaml:"category" json:"category"`
	Insight     string   `yaml:"insight" json:"insight"`
	TrendStatus string   `yaml:"trend_status" json:"trendStatus"`
}

// ContextBundle is the retrieval result spliced into a generation prompt.
// Sequence fields are always non-nil.
type ContextBundle struct {
	Version      string              `json:"version"`
	Category     Category            `json:"category"`
	Voice        VoiceProfile        `json:"voice"`
	Hooks        []SelectedHook      `json:"hooks"`
	ViralScripts []ViralScriptEntry  `json:"viralScripts"`
	Insights     []CompetitorInsight `json:"insights"`
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
