// Package ranking scores candidate documents against a query with BM25.
package ranking

import "sort"

// Stats exposes the corpus statistics a Scorer needs. keyword.Index implements it.
type Stats interface {
	// DocCount returns the number of indexed documents.
	DocCount() int
	// DocumentFrequency returns the number of documents containing term.
	DocumentFrequency(term string) int
	// Contains reports whether the document docID contains term.
	Contains(term, docID string) bool
	// FieldLength returns the token count of the document's indexed field.
	FieldLength(docID string) int
	// AverageFieldLength returns the mean field length; ok is false for an empty corpus.
	AverageFieldLength() (avg float64, ok bool)
}

// WeightedTerm is a scoring term and the multiplier applied to its contribution.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// ScoredDoc is a document id with its relevance score.
type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// SortScored orders docs by descending score, breaking ties by ascending id.
func SortScored(docs []ScoredDoc) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].DocID < docs[j].DocID
	})
}
