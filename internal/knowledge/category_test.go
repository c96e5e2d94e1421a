package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Category
	}{
		{"fashion keyword", "Satin Slip Dress true to size, stretchy fabric", CategoryFashion},
		{"plural keyword", "High rise jeans", CategoryFashion},
		{"uppercase", "OVERSIZED SHIRT", CategoryFashion},
		{"beauty", "Hydrating lip balm", CategoryBeauty},
		{"home", "Under sink kitchen organizer", CategoryHome},
		{"pet", "Orthopedic dog bed", CategoryPet},
		{"tech", "Magnetic phone mount", CategoryTech},
		{"fitness", "Non slip yoga mat", CategoryFitness},
		{"fitness is not fit", "Fitness tracker band", CategoryFitness},
		{"bedroom is not room", "Galaxy Star Projector led night light for bedroom", CategoryGeneral},
		{"catalog is not cat", "Seed catalog", CategoryGeneral},
		{"no keyword", "Stainless steel water bottle", CategoryGeneral},
		{"empty", "", CategoryGeneral},
		{"whitespace", "   \t\n ", CategoryGeneral},
		{"punctuation only", "!!!???", CategoryGeneral},
		{"non latin", "ドレス 👗", CategoryGeneral},
		{"keyword inside punctuation", "(dress)", CategoryFashion},
		{"skincare", "Vitamin C skincare serum", CategoryBeauty},
		{"haircare", "Haircare oil", CategoryBeauty},
		{"smartphone", "Smartphone tripod", CategoryTech},
		{"iphone", "iPhone case", CategoryTech},
		{"headphones", "Wireless headphones", CategoryTech},
		{"kitchenware", "Kitchenware set", CategoryHome},
		{"cleaning", "Cleaning gel", CategoryHome},
		{"wearable", "Wearable blanket", CategoryFashion},
		{"decorative", "Decorative pillow", CategoryHome},
		{"fitted", "Fitted blazer", CategoryFashion},
		{"pantry is not pant", "Pantry storage bins", CategoryGeneral},
		{"category is not cat", "Best in category award", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.query))
		})
	}
}

func TestClassifyCategory_Precedence(t *testing.T) {
	tests := []struct {
		query string
		want  Category
	}{
		// fashion is checked before pet
		{"a cute dog dress", CategoryFashion},
		{"dog dress", CategoryFashion},
		// beauty before pet
		{"hair clippers for your dog", CategoryBeauty},
		// home before tech
		{"kitchen phone stand", CategoryHome},
		// pet before tech
		{"pet camera with phone app", CategoryPet},
		// fashion before fitness
		{"gym shirt", CategoryFashion},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.query))
		})
	}
}

func TestClassifyCategory_AlwaysInClosedSet(t *testing.T) {
	inputs := []string{
		"", "x", "dress", "\x00\xff\xfe", "a b c d e f g", "🙂🙂🙂",
		"a very long description that talks about nothing in particular at all",
	}
	for _, in := range inputs {
		assert.True(t, ClassifyCategory(in).Valid(), "input %q", in)
	}
}

func TestQueryTokens(t *testing.T) {
	assert.Equal(t, []string{"led", "night", "light", "bedroom"}, queryTokens("LED night light for the bedroom, night"))
	assert.Empty(t, queryTokens("the and for"))
}

func TestKeywordMatches(t *testing.T) {
	tests := []struct {
		token   string
		keyword string
		want    bool
	}{
		{"dress", "dress", true},
		{"skincare", "skin", true},
		{"cleaning", "clean", true},
		{"fitted", "fit", true},
		{"smartphone", "phone", true},
		{"iphone", "phone", true},
		{"fitness", "fit", false},
		{"bedroom", "room", false},
		{"catalog", "cat", false},
		{"pantry", "pant", false},
		{"dres", "dress", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keywordMatches(tt.token, tt.keyword), "%s/%s", tt.token, tt.keyword)
	}
}

func TestWordMatches(t *testing.T) {
	assert.True(t, wordMatches("dress", "dress"))
	assert.True(t, wordMatches("dresses", "dress"))
	assert.True(t, wordMatches("pants", "pant"))
	assert.False(t, wordMatches("fitness", "fit"))
	assert.False(t, wordMatches("bedroom", "room"))
	assert.False(t, wordMatches("dres", "dress"))
}
