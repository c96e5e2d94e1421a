package knowledge

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRetriever(t *testing.T, opts ...Option) *Retriever {
	t.Helper()
	kb, err := Default()
	require.NoError(t, err)
	opts = append([]Option{WithRandSource(NewSeededSource(42))}, opts...)
	return NewRetriever(kb, opts...)
}

func eligibleHookIDs(kb *KnowledgeBase, category Category) map[string]bool {
	ids := make(map[string]bool)
	for _, h := range kb.Hooks {
		if h.appliesTo(category) {
			ids[h.ID] = true
		}
	}
	return ids
}

func scriptIDs(entries []ViralScriptEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// identitySource leaves the input order untouched.
type identitySource struct{}

func (identitySource) Shuffle(int, func(i, j int)) {}

// ==========================
// Hooks
// ==========================

func TestSelectHooks_Bounded(t *testing.T) {
	r := newTestRetriever(t)

	for _, category := range Categories {
		eligible := eligibleHookIDs(r.KnowledgeBase(), category)
		for n := -2; n <= len(r.KnowledgeBase().Hooks)+3; n++ {
			t.Run(fmt.Sprintf("%s/%d", category, n), func(t *testing.T) {
				hooks := r.SelectHooks(category, n)
				require.NotNil(t, hooks)

				want := n
				if want < 0 {
					want = 0
				}
				if want > len(eligible) {
					want = len(eligible)
				}
				assert.Len(t, hooks, want)

				seen := make(map[string]bool)
				for _, h := range hooks {
					assert.False(t, seen[h.ID], "duplicate hook %s", h.ID)
					seen[h.ID] = true
					assert.True(t, eligible[h.ID], "hook %s not eligible for %s", h.ID, category)
					assert.NotEmpty(t, h.Examples)
				}
			})
		}
	}
}

func TestSelectHooks_AffinityFilter(t *testing.T) {
	r := newTestRetriever(t)

	hooks := r.SelectHooks(CategoryFashion, 100)
	ids := make(map[string]bool)
	for _, h := range hooks {
		ids[h.ID] = true
	}

	assert.True(t, ids["fit_check"])
	assert.True(t, ids["curiosity"])
	assert.False(t, ids["pet_reaction"])
	assert.False(t, ids["texture_reveal"])

	general := r.SelectHooks(CategoryGeneral, 100)
	for _, h := range general {
		assert.NotEqual(t, "fit_check", h.ID)
	}
}

func TestSelectHooks_EveryEligibleGroupReachable(t *testing.T) {
	r := newTestRetriever(t)
	eligible := eligibleHookIDs(r.KnowledgeBase(), CategoryHome)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		for _, h := range r.SelectHooks(CategoryHome, 3) {
			seen[h.ID] = true
		}
	}
	assert.Equal(t, eligible, seen)
}

func TestSelectHooks_ReturnsCopies(t *testing.T) {
	r := NewRetriever(nil, WithRandSource(identitySource{}))

	hooks := r.SelectHooks(CategoryGeneral, 1)
	require.Len(t, hooks, 1)
	hooks[0].Examples[0] = "mutated"

	assert.NotEqual(t, "mutated", r.KnowledgeBase().Hooks[0].Examples[0])
}

func TestSelectHooks_Deterministic(t *testing.T) {
	a := newTestRetriever(t)
	b := newTestRetriever(t)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.SelectHooks(CategoryBeauty, 3), b.SelectHooks(CategoryBeauty, 3))
	}
}

// ==========================
// Exemplar scripts
// ==========================

func TestSelectExemplarScripts(t *testing.T) {
	r := newTestRetriever(t)

	tests := []struct {
		name     string
		category Category
		query    string
		wantIDs  []string
	}{
		{
			name:     "category match only",
			category: CategoryFashion,
			query:    "Satin Slip Dress true to size, stretchy fabric",
			wantIDs:  []string{"vs1"},
		},
		{
			name:     "category match outranks tag match",
			category: CategoryHome,
			query:    "makeup organizer for the home",
			wantIDs:  []string{"vs2", "vs3"},
		},
		{
			name:     "tag tokens from multi-word tags",
			category: CategoryGeneral,
			query:    "renter friendly gadget",
			wantIDs:  []string{"vs2", "vs5"},
		},
		{
			name:     "nothing relevant",
			category: CategoryGeneral,
			query:    "Galaxy Star Projector led night light for bedroom",
			wantIDs:  []string{},
		},
		{
			name:     "empty query",
			category: CategoryGeneral,
			query:    "",
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.SelectExemplarScripts(tt.category, tt.query)
			require.NotNil(t, got)
			assert.LessOrEqual(t, len(got), MaxExemplarScripts)
			assert.Equal(t, tt.wantIDs, scriptIDs(got))
		})
	}
}

func TestSelectExemplarScripts_Monotonic(t *testing.T) {
	kb := &KnowledgeBase{
		ViralScripts: []ViralScriptEntry{
			{ID: "one-shared", Category: CategoryFashion, Tags: []string{"linen"}},
			{ID: "two-shared", Category: CategoryFashion, Tags: []string{"linen", "summer"}},
			{ID: "none-shared", Category: CategoryFashion, Tags: []string{"wool"}},
		},
	}
	r := NewRetriever(kb, WithRandSource(identitySource{}))

	got := r.SelectExemplarScripts(CategoryFashion, "summer linen set")
	assert.Equal(t, []string{"two-shared", "one-shared"}, scriptIDs(got))
}

func TestSelectExemplarScripts_TiesKeepTableOrder(t *testing.T) {
	kb := &KnowledgeBase{
		ViralScripts: []ViralScriptEntry{
			{ID: "first", Category: CategoryPet, Tags: []string{"leash"}},
			{ID: "second", Category: CategoryPet, Tags: []string{"collar"}},
			{ID: "third", Category: CategoryPet, Tags: []string{"harness"}},
		},
	}
	r := NewRetriever(kb)

	got := r.SelectExemplarScripts(CategoryPet, "anything")
	assert.Equal(t, []string{"first", "second"}, scriptIDs(got))
}

func TestScoreExemplar(t *testing.T) {
	entry := ViralScriptEntry{Category: CategoryHome, Tags: []string{"home decor", "lighting"}}

	assert.Equal(t, CategoryMatchBonus, ScoreExemplar(entry, CategoryHome, "projector"))
	assert.Equal(t, CategoryMatchBonus+1, ScoreExemplar(entry, CategoryHome, "decor decor"))
	assert.Equal(t, 2, ScoreExemplar(entry, CategoryTech, "home decor"))
	assert.Equal(t, 0, ScoreExemplar(entry, CategoryTech, "light"))
}

// ==========================
// Insights
// ==========================

func TestSelectCompetitorInsights(t *testing.T) {
	r := newTestRetriever(t)

	for _, category := range Categories {
		t.Run(string(category), func(t *testing.T) {
			got := r.SelectCompetitorInsights(category)
			require.NotNil(t, got)

			want := 0
			for _, in := range r.KnowledgeBase().Insights {
				if in.Category == category {
					want++
				}
			}
			assert.Len(t, got, want)
			for _, in := range got {
				assert.Equal(t, category, in.Category)
			}
		})
	}

	assert.Empty(t, r.SelectCompetitorInsights(CategoryGeneral))
	assert.Empty(t, r.SelectCompetitorInsights(Category("unknown")))
}

// ==========================
// Bundle
// ==========================

func TestAssembleBundle_Scenarios(t *testing.T) {
	r := newTestRetriever(t)

	t.Run("no category keyword", func(t *testing.T) {
		b := r.AssembleBundle("Galaxy Star Projector", "led night light for bedroom")

		assert.Equal(t, CategoryGeneral, b.Category)
		assert.Empty(t, b.ViralScripts)
		assert.Empty(t, b.Insights)
		assert.LessOrEqual(t, len(b.Hooks), DefaultHookCount)
	})

	t.Run("fashion product", func(t *testing.T) {
		b := r.AssembleBundle("Satin Slip Dress", "true to size, stretchy fabric")

		assert.Equal(t, CategoryFashion, b.Category)
		require.NotEmpty(t, b.ViralScripts)
		assert.Equal(t, CategoryFashion, b.ViralScripts[0].Category)
		require.Len(t, b.Insights, 1)
		assert.Equal(t, "c1", b.Insights[0].ID)
	})

	t.Run("precedence", func(t *testing.T) {
		b := r.AssembleBundle("a cute dog dress", "")
		assert.Equal(t, CategoryFashion, b.Category)
	})
}

func TestAssembleBundle_Complete(t *testing.T) {
	r := newTestRetriever(t)

	inputs := [][2]string{
		{"", ""},
		{"   ", "\n\t"},
		{"🙂", "✨✨"},
		{"Satin Slip Dress", ""},
		{"", "wireless phone charger"},
		{"x", string(make([]byte, 4096))},
	}
	for _, in := range inputs {
		b := r.AssembleBundle(in[0], in[1])

		assert.Equal(t, BundleVersion, b.Version)
		assert.True(t, b.Category.Valid())
		assert.NotEmpty(t, b.Voice.Characteristics)
		assert.NotEmpty(t, b.Voice.LanguagePatterns.MustUse)
		assert.NotEmpty(t, b.Voice.LanguagePatterns.Avoid)
		assert.NotEmpty(t, b.Voice.StructureRules)
		assert.NotNil(t, b.Hooks)
		assert.NotNil(t, b.ViralScripts)
		assert.NotNil(t, b.Insights)
		assert.LessOrEqual(t, len(b.Hooks), DefaultHookCount)
		assert.LessOrEqual(t, len(b.ViralScripts), MaxExemplarScripts)
	}
}

func TestAssembleBundle_DeterministicWithSeed(t *testing.T) {
	a := newTestRetriever(t)
	b := newTestRetriever(t)

	for i := 0; i < 10; i++ {
		assert.Equal(t,
			a.AssembleBundle("Orthopedic dog bed", "memory foam, washable cover"),
			b.AssembleBundle("Orthopedic dog bed", "memory foam, washable cover"),
		)
	}
}

func TestAssembleBundle_HookCountOption(t *testing.T) {
	r := newTestRetriever(t, WithHookCount(5))
	assert.Len(t, r.AssembleBundle("Yoga mat", "").Hooks, 5)

	r = newTestRetriever(t, WithHookCount(0))
	assert.Empty(t, r.AssembleBundle("Yoga mat", "").Hooks)
}

func TestAssembleBundle_VoiceIsACopy(t *testing.T) {
	r := newTestRetriever(t)
	b := r.AssembleBundle("Satin Slip Dress", "")
	b.Voice.Characteristics[0] = "mutated"

	assert.NotEqual(t, "mutated", r.KnowledgeBase().Voice.Characteristics[0])
}

func TestAssembleBundle_Concurrent(t *testing.T) {
	r := NewRetriever(nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := r.AssembleBundle(fmt.Sprintf("dress %d", i), "buttery soft")
			assert.Equal(t, CategoryFashion, b.Category)
			assert.Len(t, b.Hooks, DefaultHookCount)
		}(i)
	}
	wg.Wait()
}
