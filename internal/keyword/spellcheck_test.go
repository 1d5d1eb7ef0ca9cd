package keyword

import (
	"testing"
)

// mockTermDictionary is a TermDictionary over a fixed term -> frequency map.
type mockTermDictionary struct {
	terms map[string]int
}

func newMockTermDictionary(terms map[string]int) *mockTermDictionary {
	return &mockTermDictionary{terms: terms}
}

func (m *mockTermDictionary) ContainsTerm(term string) bool {
	_, ok := m.terms[term]
	return ok
}

func (m *mockTermDictionary) TermFrequency(term string) int {
	return m.terms[term]
}

func (m *mockTermDictionary) FuzzyTerms(term string, maxDistance int) []Match {
	var out []Match
	for t := range m.terms {
		if d := LevenshteinDistance(term, t); d <= maxDistance {
			out = append(out, Match{Term: t, Distance: d})
		}
	}
	return out
}

func TestSpellChecker_NewSpellChecker(t *testing.T) {
	sc := NewSpellChecker(newMockTermDictionary(map[string]int{"hello": 10}))
	if sc.maxDistance != 2 {
		t.Errorf("default maxDistance = %d, want 2", sc.maxDistance)
	}
	if sc.minFreq != 1 {
		t.Errorf("default minFreq = %d, want 1", sc.minFreq)
	}
	if sc.maxSuggestions != 5 {
		t.Errorf("default maxSuggestions = %d, want 5", sc.maxSuggestions)
	}
}

func TestSpellChecker_NewSpellChecker_WithOptions(t *testing.T) {
	sc := NewSpellChecker(newMockTermDictionary(nil),
		WithMaxDistance(3),
		WithMinFrequency(5),
		WithMaxSuggestions(10),
	)
	if sc.maxDistance != 3 || sc.minFreq != 5 || sc.maxSuggestions != 10 {
		t.Errorf("options not applied: %+v", sc)
	}

	// Invalid values keep defaults.
	sc = NewSpellChecker(newMockTermDictionary(nil), WithMaxDistance(0), WithMinFrequency(-1), WithMaxSuggestions(0))
	if sc.maxDistance != 2 || sc.minFreq != 1 || sc.maxSuggestions != 5 {
		t.Errorf("invalid options changed defaults: %+v", sc)
	}
}

func TestSpellChecker_Suggest(t *testing.T) {
	dict := newMockTermDictionary(map[string]int{
		"programmer": 10,
		"programs":   2,
		"pragmatic":  3,
		"code":       8,
		"coder":      1,
	})
	sc := NewSpellChecker(dict)

	got := sc.Suggest("programer")
	if len(got) == 0 || got[0].Term != "programmer" {
		t.Fatalf("Suggest(programer) = %+v, want programmer first", got)
	}
	if got[0].Distance != 1 {
		t.Errorf("distance = %d, want 1", got[0].Distance)
	}

	// Exact matches are not suggestions.
	for _, s := range sc.Suggest("code") {
		if s.Term == "code" {
			t.Error("exact term returned as suggestion")
		}
	}
}

func TestSpellChecker_SuggestRespectsMinFrequency(t *testing.T) {
	dict := newMockTermDictionary(map[string]int{"coder": 1, "codes": 4})
	sc := NewSpellChecker(dict, WithMinFrequency(2))
	got := sc.Suggest("codez")
	if len(got) != 1 || got[0].Term != "codes" {
		t.Errorf("Suggest(codez) = %+v, want only codes", got)
	}
}

func TestSpellChecker_Check(t *testing.T) {
	dict := newMockTermDictionary(map[string]int{"clean": 2, "code": 1, "coder": 1})
	sc := NewSpellChecker(dict)

	result := sc.Check("Clean Cdoe")
	if !result.HasCorrections {
		t.Fatal("expected corrections")
	}
	if len(result.MisspelledTerms) != 1 || result.MisspelledTerms[0] != "cdoe" {
		t.Errorf("MisspelledTerms = %v", result.MisspelledTerms)
	}
	if result.CorrectedQuery != "clean code" {
		t.Errorf("CorrectedQuery = %q, want %q", result.CorrectedQuery, "clean code")
	}

	clean := sc.Check("clean code")
	if clean.HasCorrections {
		t.Errorf("unexpected corrections: %+v", clean)
	}
	if clean.CorrectedQuery != "clean code" {
		t.Errorf("CorrectedQuery = %q", clean.CorrectedQuery)
	}
}

func TestSpellChecker_GetTopSuggestions(t *testing.T) {
	dict := newMockTermDictionary(map[string]int{"code": 3, "coder": 1, "clean": 1})
	sc := NewSpellChecker(dict)

	got := sc.GetTopSuggestions("clean cod", 2)
	if len(got) != 2 {
		t.Fatalf("GetTopSuggestions = %v, want 2 entries", got)
	}
	if got[0] != "clean code" {
		t.Errorf("first suggestion = %q, want %q", got[0], "clean code")
	}
	if got[1] != "clean coder" {
		t.Errorf("second suggestion = %q, want %q", got[1], "clean coder")
	}

	if got := sc.GetTopSuggestions("clean code", 3); len(got) != 0 {
		t.Errorf("correct query produced suggestions %v", got)
	}
	if got := sc.GetTopSuggestions("cod", 0); got != nil {
		t.Errorf("n=0 produced %v", got)
	}
}

func TestSpellChecker_IsMisspelled(t *testing.T) {
	sc := NewSpellChecker(newMockTermDictionary(map[string]int{"hello": 1}))
	if sc.IsMisspelled("Hello") {
		t.Error("known term reported misspelled")
	}
	if !sc.IsMisspelled("helo") {
		t.Error("unknown term not reported misspelled")
	}
}
