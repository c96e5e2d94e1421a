// internal/knowledge/render.go
package knowledge

import (
	"fmt"
	"strings"
)

// Render formats a bundle as the plain-text context block of a generation prompt.
func Render(b ContextBundle) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PRODUCT CATEGORY: %s\n\n", strings.ToUpper(string(b.Category)))

	sb.WriteString("VOICE PROFILE:\n")
	writeLines(&sb, b.Voice.Characteristics, "- ")
	sb.WriteString("\nLANGUAGE PATTERNS (MUST USE):\n")
	writeLines(&sb, b.Voice.LanguagePatterns.MustUse, "- ")
	sb.WriteString("\nLANGUAGE PATTERNS (NEVER USE):\n")
	writeLines(&sb, b.Voice.LanguagePatterns.Avoid, "- ")
	sb.WriteString("\nSTRUCTURE RULES:\n")
	writeLines(&sb, b.Voice.StructureRules, "- ")

	sb.WriteString("\nHOOK STRATEGIES:\n")
	if len(b.Hooks) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, h := range b.Hooks {
		fmt.Fprintf(&sb, "%d. %s", i+1, h.Type)
		if h.Delivery != "" {
			fmt.Fprintf(&sb, " [%s]", h.Delivery)
		}
		if h.Description != "" {
			fmt.Fprintf(&sb, ": %s", h.Description)
		}
		sb.WriteString("\n")
		writeLines(&sb, h.Examples, "   - ")
	}

	sb.WriteString("\nPROVEN VIRAL SCRIPTS:\n")
	if len(b.ViralScripts) == 0 {
		sb.WriteString("(none for this category)\n")
	}
	for _, s := range b.ViralScripts {
		fmt.Fprintf(&sb, "- %s (%s, %s views, %s completion, %s sales)\n",
			s.ProductName, s.Framework, s.Metrics.Views, s.Metrics.CompletionRate, s.Metrics.Sales)
		fmt.Fprintf(&sb, "  \"%s\"\n", s.ScriptText)
	}

	sb.WriteString("\nCOMPETITOR INSIGHTS:\n")
	if len(b.Insights) == 0 {
		sb.WriteString("(none for this category)\n")
	}
	for _, in := range b.Insights {
		fmt.Fprintf(&sb, "- [%s] %s\n", in.TrendStatus, in.Insight)
	}

	return sb.String()
}

// PersonaString renders only the voice profile.
func PersonaString(v VoiceProfile) string {
	var sb strings.Builder
	sb.WriteString("CHARACTERISTICS:\n")
	writeLines(&sb, v.Characteristics, "")
	sb.WriteString("\nLANGUAGE PATTERNS (MUST USE):\n")
	writeLines(&sb, v.LanguagePatterns.MustUse, "")
	sb.WriteString("\nSTRUCTURE RULES:\n")
	writeLines(&sb, v.StructureRules, "")
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string, prefix string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteString("\n")
	}
}
