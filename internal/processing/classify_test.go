package processing

import "testing"

func TestClassifierMatches(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	tests := []struct {
		name     string
		category Category
		text     string
		want     bool
	}{
		{"Portuguese emotional", CategoryEmotional, "Emocional", true},
		{"English emotional", CategoryEmotional, "deeply emotional storytelling", true},
		{"Accented text folds", CategoryEmotional, "EMOCIONÁL", true},
		{"Rational not emotional", CategoryEmotional, "Racional", false},
		{"Portuguese rational", CategoryRational, "Tom Racional", true},
		{"Portuguese product", CategoryProduct, "Foco no Produto", true},
		{"English brand", CategoryBrand, "brand building", true},
		{"Portuguese brand", CategoryBrand, "Marca", true},
		{"Empty text", CategoryBrand, "", false},
		{"Unrelated text", CategoryProduct, "lifestyle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Matches(tt.category, tt.text); got != tt.want {
				t.Errorf("Matches(%v, %q) = %v, want %v", tt.category, tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifierIndependentAxes(t *testing.T) {
	// A single string can satisfy several categories when the source
	// vocabulary mixes them.
	c := NewClassifier(map[string][]string{
		"emotional": {"emocional"},
		"rational":  {"racional"},
	})

	text := "mistura emocional e racional"
	if !c.Matches(CategoryEmotional, text) || !c.Matches(CategoryRational, text) {
		t.Errorf("expected %q to match both tone categories", text)
	}
}

func TestClassifierIgnoresUnknownNames(t *testing.T) {
	c := NewClassifier(map[string][]string{
		"emotional": {"emocional"},
		"mystery":   {"anything"},
	})

	if !c.Matches(CategoryEmotional, "emocional") {
		t.Error("known category should still match")
	}
	if c.Matches(CategoryBrand, "anything") {
		t.Error("unknown table names must not leak into real categories")
	}
}
