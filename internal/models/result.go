package models

// SearchResult represents a single search hit.
type SearchResult struct {
	Document     Document `json:"document"`
	Score        float64  `json:"score"`
	Radius       int      `json:"radius"`                  // edit-distance radius at which the document was first found
	MatchedTerms []string `json:"matched_terms,omitempty"` // vocabulary terms (or titles) that matched
	Rank         int      `json:"rank"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results []*SearchResult `json:"results"`
	Total   int             `json:"total"`
	// Radius is the widest radius that was queried before the search stopped.
	Radius    int    `json:"radius"`
	QueryTime int64  `json:"query_time_ms"`
	Query     string `json:"query"`
	// Suggestions contains "Did you mean?" corrected queries. Only populated when
	// the request asked for suggestions and some query term is not in the vocabulary.
	Suggestions []string `json:"suggestions,omitempty"`
}
