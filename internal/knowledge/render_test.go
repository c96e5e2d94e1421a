package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := NewRetriever(nil, WithRandSource(identitySource{}))
	b := r.AssembleBundle("Satin Slip Dress", "true to size, stretchy fabric")

	out := Render(b)

	assert.True(t, strings.HasPrefix(out, "PRODUCT CATEGORY: FASHION\n"))
	assert.Contains(t, out, "Run don't walk")
	assert.Contains(t, out, "LANGUAGE PATTERNS (NEVER USE):\n- Game-changer")
	assert.Contains(t, out, "1. Curiosity-Driven [verbal]: Spark interest to make them watch more.")
	assert.Contains(t, out, "   - You'll never guess what happens next...")
	assert.Contains(t, out, "- Shapewear Bodysuit (Problem-Solution, 4.2M views, 68% completion, 15k+ sales)")
	assert.Contains(t, out, "- [peak] Try-on hauls performed 30% better")
}

func TestRender_EmptySections(t *testing.T) {
	r := NewRetriever(nil, WithHookCount(0))
	out := Render(r.AssembleBundle("Galaxy Star Projector", "led night light for bedroom"))

	assert.Contains(t, out, "PRODUCT CATEGORY: GENERAL")
	assert.Contains(t, out, "HOOK STRATEGIES:\n(none)")
	assert.Contains(t, out, "PROVEN VIRAL SCRIPTS:\n(none for this category)")
	assert.Contains(t, out, "COMPETITOR INSIGHTS:\n(none for this category)")
}

func TestPersonaString(t *testing.T) {
	out := PersonaString(MustDefault().Voice)

	assert.True(t, strings.HasPrefix(out, "CHARACTERISTICS:\nApproachable Expert"))
	assert.Contains(t, out, "LANGUAGE PATTERNS (MUST USE):\nRun don't walk")
	assert.NotContains(t, out, "Game-changer")
}
