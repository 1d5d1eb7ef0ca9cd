package keyword

import (
	"sort"
	"strings"
)

// TermDictionary is the vocabulary a SpellChecker draws suggestions from.
// *Index implements it.
type TermDictionary interface {
	// ContainsTerm checks if a term exists in the vocabulary.
	ContainsTerm(term string) bool
	// TermFrequency returns the document frequency for a term.
	TermFrequency(term string) int
	// FuzzyTerms returns vocabulary terms within maxDistance of term.
	FuzzyTerms(term string, maxDistance int) []Match
}

// Suggestion represents a spelling suggestion with its score.
type Suggestion struct {
	Term      string  // The suggested term
	Distance  int     // Edit distance from the original term
	Frequency int     // Document frequency (popularity)
	Score     float64 // Combined score for ranking
}

// SpellCheckResult contains the result of spell checking a query.
type SpellCheckResult struct {
	OriginalQuery   string
	CorrectedQuery  string
	Suggestions     map[string][]Suggestion // misspelled term -> ranked suggestions
	HasCorrections  bool
	MisspelledTerms []string
}

// SpellChecker proposes "did you mean" corrections for query terms that are
// not in the vocabulary.
type SpellChecker struct {
	dictionary     TermDictionary
	maxDistance    int
	minFreq        int
	maxSuggestions int
}

// SpellCheckerOption is a functional option for configuring SpellChecker.
type SpellCheckerOption func(*SpellChecker)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMinFrequency sets the minimum document frequency for suggestions.
func WithMinFrequency(f int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if f >= 0 {
			s.minFreq = f
		}
	}
}

// WithMaxSuggestions sets the maximum number of suggestions to return per term.
func WithMaxSuggestions(n int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSpellChecker creates a new SpellChecker with the given dictionary.
func NewSpellChecker(dict TermDictionary, opts ...SpellCheckerOption) *SpellChecker {
	s := &SpellChecker{
		dictionary:     dict,
		maxDistance:    2,
		minFreq:        1,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check tokenizes query and collects suggestions for every term missing from
// the dictionary. CorrectedQuery replaces each misspelled term by its best
// suggestion.
func (s *SpellChecker) Check(query string) *SpellCheckResult {
	result := &SpellCheckResult{
		OriginalQuery:   query,
		Suggestions:     make(map[string][]Suggestion),
		MisspelledTerms: make([]string, 0),
	}
	terms := Tokenize(query)
	corrected := make([]string, 0, len(terms))
	for _, term := range terms {
		if s.dictionary.ContainsTerm(term) {
			corrected = append(corrected, term)
			continue
		}
		suggestions := s.Suggest(term)
		if len(suggestions) == 0 {
			corrected = append(corrected, term)
			continue
		}
		result.HasCorrections = true
		result.MisspelledTerms = append(result.MisspelledTerms, term)
		result.Suggestions[term] = suggestions
		corrected = append(corrected, suggestions[0].Term)
	}
	result.CorrectedQuery = strings.Join(corrected, " ")
	return result
}

// Suggest returns spelling suggestions for a single term, best first.
// Score is frequency / (distance + 1); ties break on the term itself.
func (s *SpellChecker) Suggest(term string) []Suggestion {
	term = strings.ToLower(term)
	suggestions := make([]Suggestion, 0)
	for _, m := range s.dictionary.FuzzyTerms(term, s.maxDistance) {
		if m.Distance == 0 {
			continue
		}
		freq := s.dictionary.TermFrequency(m.Term)
		if freq < s.minFreq {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Term:      m.Term,
			Distance:  m.Distance,
			Frequency: freq,
			Score:     float64(freq) / float64(m.Distance+1),
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Term < suggestions[j].Term
	})
	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}
	return suggestions
}

// IsMisspelled reports whether term is absent from the dictionary.
func (s *SpellChecker) IsMisspelled(term string) bool {
	return !s.dictionary.ContainsTerm(strings.ToLower(term))
}

// GetTopSuggestions returns up to n distinct corrected queries. The k-th
// query replaces every misspelled term by its k-th suggestion, falling back
// to the term's last suggestion when it has fewer.
func (s *SpellChecker) GetTopSuggestions(query string, n int) []string {
	if n <= 0 {
		return nil
	}
	result := s.Check(query)
	if !result.HasCorrections {
		return nil
	}
	terms := Tokenize(query)
	seen := make(map[string]struct{})
	out := make([]string, 0, n)
	for k := 0; k < s.maxSuggestions && len(out) < n; k++ {
		words := make([]string, len(terms))
		for i, term := range terms {
			sugg, misspelled := result.Suggestions[term]
			if !misspelled {
				words[i] = term
				continue
			}
			words[i] = sugg[min(k, len(sugg)-1)].Term
		}
		q := strings.Join(words, " ")
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}
