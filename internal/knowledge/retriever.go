// internal/knowledge/retriever.go
package knowledge

import (
	"math/rand/v2"
	"sort"
	"sync"
)

const (
	// CategoryMatchBonus outweighs any realistic count of shared tag tokens.
	CategoryMatchBonus = 10
	MaxExemplarScripts = 2
	DefaultHookCount   = 3
)

// RandSource drives hook shuffling.
type RandSource interface {
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// NewSeededSource returns a reproducible source. Safe for concurrent use.
func NewSeededSource(seed uint64) RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource returns a source seeded from the runtime generator.
func NewRandomSource() RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

type Retriever struct {
	kb        *KnowledgeBase
	rnd       RandSource
	hookCount int
}

type Option func(*Retriever)

func WithRandSource(src RandSource) Option {
	return func(r *Retriever) {
		if src != nil {
			r.rnd = src
		}
	}
}

// WithHookCount sets how many hook groups AssembleBundle asks for.
func WithHookCount(n int) Option {
	return func(r *Retriever) {
		r.hookCount = n
	}
}

// NewRetriever binds a knowledge base. A nil kb falls back to the embedded dataset.
func NewRetriever(kb *KnowledgeBase, opts ...Option) *Retriever {
	if kb == nil {
		kb = MustDefault()
	}
	r := &Retriever{
		kb:        kb,
		rnd:       NewRandomSource(),
		hookCount: DefaultHookCount,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retriever) KnowledgeBase() *KnowledgeBase { return r.kb }

// VoiceGuidance returns a copy of the persona. There is one persona for
// every category.
func (r *Retriever) VoiceGuidance(_ Category) VoiceProfile {
	return r.kb.Voice.clone()
}

// SelectHooks picks up to desiredCount distinct hook groups eligible for
// category, uniformly at random.
func (r *Retriever) SelectHooks(category Category, desiredCount int) []SelectedHook {
	if desiredCount <= 0 {
		return []SelectedHook{}
	}

	eligible := make([]HookCategory, 0, len(r.kb.Hooks))
	for _, h := range r.kb.Hooks {
		if h.appliesTo(category) {
			eligible = append(eligible, h)
		}
	}

	r.rnd.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if desiredCount > len(eligible) {
		desiredCount = len(eligible)
	}

	out := make([]SelectedHook, 0, desiredCount)
	for _, h := range eligible[:desiredCount] {
		out = append(out, SelectedHook{
			ID:          h.ID,
			Type:        h.Name,
			Description: h.Description,
			Delivery:    h.Delivery,
			Examples:    cloneStrings(h.Examples),
		})
	}
	return out
}

type scoredScript struct {
	entry ViralScriptEntry
	score int
}

// ScoreExemplar is the relevance of one exemplar to a query already
// classified into category.
func ScoreExemplar(entry ViralScriptEntry, category Category, query string) int {
	return scoreTokens(entry, category, queryTokens(query))
}

func scoreTokens(entry ViralScriptEntry, category Category, tokens []string) int {
	score := 0
	if entry.Category == category {
		score += CategoryMatchBonus
	}

	var tagWords []string
	for _, tag := range entry.Tags {
		tagWords = append(tagWords, tokenize(tag)...)
	}
	for _, tok := range tokens {
		for _, w := range tagWords {
			if wordMatches(tok, w) || wordMatches(w, tok) {
				score++
				break
			}
		}
	}
	return score
}

// SelectExemplarScripts ranks exemplars by relevance, drops those scoring
// zero and keeps the top two. Ties keep table order.
func (r *Retriever) SelectExemplarScripts(category Category, query string) []ViralScriptEntry {
	tokens := queryTokens(query)

	scored := make([]scoredScript, 0, len(r.kb.ViralScripts))
	for _, s := range r.kb.ViralScripts {
		if score := scoreTokens(s, category, tokens); score > 0 {
			scored = append(scored, scoredScript{entry: s, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > MaxExemplarScripts {
		scored = scored[:MaxExemplarScripts]
	}

	out := make([]ViralScriptEntry, 0, len(scored))
	for _, s := range scored {
		e := s.entry
		e.Tags = cloneStrings(e.Tags)
		out = append(out, e)
	}
	return out
}

// SelectCompetitorInsights returns every insight tagged exactly with category.
func (r *Retriever) SelectCompetitorInsights(category Category) []CompetitorInsight {
	out := []CompetitorInsight{}
	for _, in := range r.kb.Insights {
		if in.Category == category {
			out = append(out, in)
		}
	}
	return out
}

// AssembleBundle runs classification and every selector for one product.
func (r *Retriever) AssembleBundle(productName, description string) ContextBundle {
	query := ProductQuery{Name: productName, Description: description}.Text()
	category := ClassifyCategory(query)

	return ContextBundle{
		Version:      BundleVersion,
		Category:     category,
		Voice:        r.VoiceGuidance(category),
		Hooks:        r.SelectHooks(category, r.hookCount),
		ViralScripts: r.SelectExemplarScripts(category, query),
		Insights:     r.SelectCompetitorInsights(category),
	}
}
