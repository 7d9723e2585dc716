package processing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is one qualitative bucket a creative can fall into. Tone and
// focus are independent axes, so a creative may match several categories
// at once, or none.
type Category int

const (
	CategoryEmotional Category = iota
	CategoryRational
	CategoryProduct
	CategoryBrand
)

func (c Category) String() string {
	switch c {
	case CategoryEmotional:
		return "emotional"
	case CategoryRational:
		return "rational"
	case CategoryProduct:
		return "product"
	case CategoryBrand:
		return "brand"
	}
	return "unknown"
}

// Classifier matches free-form classification strings against a keyword
// table. Matching is substring containment after case and accent folding,
// so "Emocional" and "emotional" both land in CategoryEmotional with the
// default table.
type Classifier struct {
	keywords map[Category][]string
}

// DefaultKeywords covers the vocabularies the analysis model is known to
// emit (Portuguese and English).
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		"emotional": {"emocional", "emotional"},
		"rational":  {"racional", "rational"},
		"product":   {"produto", "product"},
		"brand":     {"marca", "brand"},
	}
}

// NewClassifier builds a Classifier from a name-keyed keyword table, the
// shape the config file carries. Unknown names are ignored; categories
// missing from the table simply never match.
func NewClassifier(table map[string][]string) *Classifier {
	byName := map[string]Category{
		"emotional": CategoryEmotional,
		"rational":  CategoryRational,
		"product":   CategoryProduct,
		"brand":     CategoryBrand,
	}

	kw := make(map[Category][]string)
	for name, words := range table {
		cat, ok := byName[name]
		if !ok {
			continue
		}
		for _, w := range words {
			kw[cat] = append(kw[cat], fold(w))
		}
	}
	return &Classifier{keywords: kw}
}

// Matches reports whether text contains any keyword of the category.
func (c *Classifier) Matches(cat Category, text string) bool {
	if text == "" {
		return false
	}
	folded := fold(text)
	for _, kw := range c.keywords[cat] {
		if kw != "" && strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics.
func fold(s string) string {
	stripped, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(stripped)
}
