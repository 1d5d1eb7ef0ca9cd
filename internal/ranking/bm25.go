package ranking

import (
	"math"

	"github.com/hyperjump/shiori/internal/keyword"
)

// Scorer computes BM25 relevance scores. Term frequency is the 0/1 presence
// reported by Stats.Contains, so repeated terms are not rewarded.
type Scorer struct {
	k1 float64
	b  float64
}

// NewScorer returns a Scorer using cfg. Non-positive K1 or B fall back to
// the defaults, so a zero BM25Config scores with k1 1.5 and b 0.75.
func NewScorer(cfg BM25Config) *Scorer {
	def := DefaultBM25Config()
	if cfg.K1 <= 0 {
		cfg.K1 = def.K1
	}
	if cfg.B <= 0 {
		cfg.B = def.B
	}
	return &Scorer{k1: cfg.K1, b: cfg.B}
}

// IDF returns ln((N - df + 0.5) / (df + 0.5) + 1) for term.
func (s *Scorer) IDF(stats Stats, term string) float64 {
	n := float64(stats.DocCount())
	df := float64(stats.DocumentFrequency(term))
	return math.Log((n-df+0.5)/(df+0.5) + 1)
}

// Score returns the weighted BM25 sum over terms for docID. Terms the
// document does not contain contribute nothing, and an empty corpus scores 0.
func (s *Scorer) Score(stats Stats, terms []WeightedTerm, docID string) float64 {
	avgLen, ok := stats.AverageFieldLength()
	if !ok || avgLen == 0 {
		return 0
	}
	docLen := float64(stats.FieldLength(docID))
	norm := s.k1 * (1 - s.b + s.b*docLen/avgLen)

	var score float64
	for _, wt := range terms {
		if !stats.Contains(wt.Term, docID) {
			continue
		}
		const f = 1.0
		tf := f * (s.k1 + 1) / (f + norm)
		score += wt.Weight * s.IDF(stats, wt.Term) * tf
	}
	return score
}

// ScoreQuery tokenizes query and scores docID with every token weighted 1.
func (s *Scorer) ScoreQuery(stats Stats, query string, docID string) float64 {
	var terms []WeightedTerm
	for tok := range keyword.Tokens(query) {
		terms = append(terms, WeightedTerm{Term: tok, Weight: 1})
	}
	return s.Score(stats, terms, docID)
}
