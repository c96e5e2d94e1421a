// internal/knowledge/category.go
package knowledge

import (
	"strings"
	"unicode"
)

type keywordGroup struct {
	category Category
	keywords []string
}

// categoryKeywords is checked in order; the first group with a matching
// keyword wins. fitness is last so it never shadows an earlier group.
var categoryKeywords = []keywordGroup{
	{CategoryFashion, []string{"dress", "shirt", "wear", "fit", "pant", "jean"}},
	{CategoryBeauty, []string{"skin", "hair", "makeup", "balm"}},
	{CategoryHome, []string{"clean", "decor", "kitchen", "room"}},
	{CategoryPet, []string{"dog", "cat", "pet"}},
	{CategoryTech, []string{"phone", "charger", "tech"}},
	{CategoryFitness, []string{"workout", "gym", "yoga", "dumbbell", "fitness"}},
}

// infixKeywords also match inside a token (smartphone, iphone, headphones).
var infixKeywords = map[string]bool{
	"phone": true,
}

// keywordExceptions are tokens that start with a keyword but mean something
// else. fitness is excluded from fit so it reaches the fitness group.
var keywordExceptions = map[string][]string{
	"fit":  {"fitness"},
	"cat":  {"catalog", "categor", "catch", "cater"},
	"pant": {"pantry"},
	"pet":  {"petal", "petite", "petrol"},
}

// ClassifyCategory maps free text to exactly one category. It never fails:
// text without a known keyword resolves to CategoryGeneral.
func ClassifyCategory(query string) Category {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return CategoryGeneral
	}

	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			for _, tok := range tokens {
				if keywordMatches(tok, kw) {
					return group.category
				}
			}
		}
	}
	return CategoryGeneral
}

// keywordMatches reports whether token starts with keyword (skincare, cleaning,
// fitted) or, for infix keywords, contains it. A token never matches a keyword
// in its middle otherwise, so bedroom does not hit room.
func keywordMatches(token, keyword string) bool {
	if infixKeywords[keyword] {
		return strings.Contains(token, keyword)
	}
	if !strings.HasPrefix(token, keyword) {
		return false
	}
	for _, ex := range keywordExceptions[keyword] {
		if strings.HasPrefix(token, ex) {
			return false
		}
	}
	return true
}

// tokenize lower-cases s and splits it on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// wordMatches reports whether token is word or its plural. Used for exemplar tags.
func wordMatches(token, word string) bool {
	if token == word {
		return true
	}
	if !strings.HasPrefix(token, word) {
		return false
	}
	rest := token[len(word):]
	return rest == "s" || rest == "es"
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "for": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "with": {}, "is": {}, "it": {}, "this": {}, "that": {},
	"my": {}, "your": {}, "you": {}, "i": {}, "at": {}, "by": {}, "or": {},
}

// queryTokens returns the distinct non-stop-word tokens of s in first-seen order.
func queryTokens(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range tokenize(s) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
