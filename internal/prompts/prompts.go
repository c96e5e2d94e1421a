// internal/prompts/prompts.go
package prompts

import (
	"fmt"
	"strings"
)

// SystemInstruction is shared by every generation call.
const SystemInstruction = `CORE IDENTITY:
You are a TikTok Shop affiliate scriptwriter for a creator persona speaking to women aged 30-55.

TARGET CREATOR PROFILE:
- Age: 29, speaking to 30-55 year olds.
- Vibe: Approachable Expert, "Bestie" advice, Detail-Oriented.
- CRITICAL RULE: For fashion/wearables, you MUST mention fit/sizing specifics in the first 15 seconds.
- TONE: Enthusiastic but grounded. Uses specific phrasing provided in the knowledge base.

NEVER GENERATE GENERIC AI CONTENT:
- Banished words: "Game-changer", "Revolutionary", "Unlock", "Unleash", "Dive in".
- Banished style: Corporate marketing, overly salesy, generic influencer.

MANDATORY SCRIPT FRAMEWORKS:
1. PROBLEM-AGITATE-SOLUTION (PAS)
2. BEFORE-AFTER-BRIDGE (BAB)
3. DAY-IN-THE-LIFE / ROUTINE`

// NoResearchFallback replaces an empty research answer.
const NoResearchFallback = "No research data found. Proceeding with general knowledge."

func Research(product, details string) string {
	parts := []string{
		fmt.Sprintf("You are a TikTok Shop market research engine. Perform a deep dive analysis for this product: %q.", product),
		"",
		"STEP 1: SEARCH (use Google Search):",
		fmt.Sprintf("1. %q TikTok Shop and %q viral TikTok video (what is trending).", product, product),
		fmt.Sprintf("2. %q reviews TikTok (real user language, complaints and praise).", product),
		"3. Best products in this category on TikTok Shop this year (competitive landscape).",
		"4. Top sellers in this category on TikTok Shop (winning patterns).",
		fmt.Sprintf("5. %q aesthetic unboxing or ASMR (faceless content potential).", product),
		"",
		"STEP 2: ANALYZE THE RESULTS:",
		"- Viral Patterns: which hooks do top videos use?",
		"- Visual Angles: which visual styles get views (green screen, unboxing, aesthetic demo, chaos-to-calm)?",
		"- Pain Points: which specific problems are women 30-55 solving with this?",
		"- Faceless Potential: can this be sold without a face (texture, sound, visual satisfaction)?",
		"",
		"STEP 3: SYNTHESIZE into a strategic summary. Identify gaps and opportunities for differentiation.",
		"",
		"OUTPUT: a comprehensive, strategic market research summary.",
	}
	if strings.TrimSpace(details) != "" {
		parts = append(parts, "", "Product Details/Context: "+details)
	}
	return strings.Join(parts, "\n")
}

type DraftParams struct {
	Product    string
	Length     string
	Research   string
	IsFaceless bool
	RAGContext string
}

func Draft(p DraftParams) string {
	mode := "PERSONALITY (CREATOR VOICE)"
	third := "STORYTELLING / ROUTINE"
	if p.IsFaceless {
		mode = "FACELESS / AESTHETIC / ASMR"
		third = "ASMR / SENSORY"
	}

	parts := []string{
		"MARKET INTELLIGENCE & RESEARCH BRIEF:",
		p.Research,
		"",
		"*** KNOWLEDGE BASE CONTEXT - STRICTLY ADHERE TO THIS ***",
		"The following data contains the creator voice profile and the hook strategies selected for this session.",
		"",
		p.RAGContext,
		"",
		"TASK:",
		fmt.Sprintf("Based on the research and the knowledge base context, create 3 DISTINCT, CONVERSION-FOCUSED TikTok Shop script variations for %q.", p.Product),
		"Target Length: " + p.Length + ".",
		"Mode: **" + mode + "**",
		"",
		"IMPORTANT:",
		"- Use the LANGUAGE PATTERNS from the context.",
		"- Use the STRUCTURE RULES from the context (fit/sizing early).",
		"- Use the HOOK STRATEGIES from the context for your 3 variations. Do not invent generic hooks.",
		"",
		"VARIATION 1: Hook Strategy 1 + Framework: PROBLEM-AGITATE-SOLUTION",
		"VARIATION 2: Hook Strategy 2 + Framework: BEFORE-AFTER-BRIDGE",
		"VARIATION 3: Hook Strategy 3 + Framework: " + third,
		"",
		`Output a JSON array of objects with fields "id" (integer), "title", "framework", "hookStrategy", "content".`,
	}
	return strings.Join(parts, "\n")
}

func Finalize(script, product string, isFaceless bool) string {
	mode := "ON-CAMERA (creator persona)"
	verbal := "The exact first 3 seconds of audio"
	visual := "Specific description of the first frame visual (MUST be high-impact)"
	full := "The complete script with timestamps. Include emotional cues"
	notes := "Filming advice and specific visual angles."
	if isFaceless {
		mode = "FACELESS (Multi-angle, Aesthetic, Text-Overlays)"
		verbal += " (or Text-to-Speech prompt)"
		visual = "Specific description of the first frame visual (MUST be high-impact & Aesthetic)"
		full = "The complete script with timestamps. INCLUDE CAMERA ANGLES IN BRACKETS e.g. [Macro Shot] [Wide Pan]"
		notes = "Specific advice on lighting, textures to emphasize, and transition speeds."
	}

	parts := []string{
		fmt.Sprintf("Take this chosen script draft for %q and polish it into a PRODUCTION-READY final output.", product),
		"",
		"Script Draft:",
		script,
		"",
		"Mode: " + mode,
		"",
		"You MUST output valid JSON with the following schema:",
		"{",
		fmt.Sprintf("  %q: %q,", "verbalHook", verbal),
		fmt.Sprintf("  %q: %q,", "visualHook", visual),
		fmt.Sprintf("  %q: %q,", "onScreenHook", "Text overlay for 0-3s (short, punchy, high contrast)"),
		fmt.Sprintf("  %q: %q,", "fullScript", full),
		fmt.Sprintf("  %q: %q,", "additionalText", "List of other text overlays with timestamps (benefits, scarcity)"),
		fmt.Sprintf("  %q: %q,", "caption", "SEO optimized caption (150 chars hook + keywords from research)"),
		`  "hashtags": ["tag1", "tag2", "tag3", "tag4", "tag5"],`,
		fmt.Sprintf("  %q: %q", "notes", notes),
		"}",
	}
	return strings.Join(parts, "\n")
}

func Refine(original, instructions string) string {
	return strings.Join([]string{
		"TASK: REFINE SCRIPT",
		"Original Script:",
		fmt.Sprintf("%q", original),
		"",
		"User Instructions for Changes:",
		fmt.Sprintf("%q", instructions),
		"",
		"ACTION:",
		"Rewrite the script applying the user's instructions while keeping the original framework, timing, and successful elements.",
		"Return ONLY the raw text of the new script content. No title, no framework label, no JSON. Just the script body.",
	}, "\n")
}

func CompetitorAnalysis(target, persona string) string {
	return strings.Join([]string{
		"TASK: COMPETITOR DEEP DIVE ANALYSIS",
		fmt.Sprintf("TARGET CREATOR/VIDEO: %q", target),
		"",
		"STEP 1: SEARCH (use Google Search). Find:",
		"1. Their content style and top performing videos.",
		"2. Hooks they use repeatedly.",
		"3. Audience sentiment (comments, reviews).",
		"4. How they position products.",
		"",
		"STEP 2: ANALYZE & COMPARE against the persona below. Identify where they are weak or where the persona can do better.",
		"",
		"CONTEXT - PERSONA:",
		persona,
		"",
		"OUTPUT: a JSON object with fields competitorName, performanceOverview,",
		"successfulPatterns (array of {patternName, example, whyItWorks}), opportunities (array of strings),",
		"differentiationStrategy, sampleScript.",
	}, "\n")
}

func ViralRepurpose(originalScript string) string {
	return strings.Join([]string{
		"TASK: VIRAL SCRIPT ANALYSIS & ITERATION",
		"",
		"Original Viral Script:",
		fmt.Sprintf("%q", originalScript),
		"",
		"ACTION 1: DECONSTRUCT why this script went viral: the psychological trigger in the hook,",
		"the pacing structure, the retention mechanism and the CTA phrasing.",
		"",
		"ACTION 2: ITERATE. Create 3 NEW scripts with the same winning structure and fresh content:",
		`- Variation 1: "The Direct Upgrade" (same angle, punchier wording).`,
		`- Variation 2: "The Reverse Angle" (same product, different opening pain point).`,
		`- Variation 3: "The Skeptic Angle" (address a common objection immediately).`,
		"",
		`Output JSON: {"analysis": "...", "scripts": [{"id": 1, "title": "...", "framework": "...", "hookStrategy": "...", "content": "..."}]}`,
	}, "\n")
}
