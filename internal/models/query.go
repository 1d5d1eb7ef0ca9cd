package models

import "strings"

// MatchMode selects what the approximate-match index is queried against.
type MatchMode string

const (
	// MatchTokens matches each query token against the token vocabulary (default).
	MatchTokens MatchMode = "tokens"
	// MatchTitles matches the whole normalized query against whole titles.
	MatchTitles MatchMode = "titles"
)

// SearchQuery represents a search request.
type SearchQuery struct {
	Query     string    `json:"query"`
	Limit     int       `json:"limit,omitempty"`
	MaxRadius *int      `json:"max_radius,omitempty"` // nil uses the engine default
	Mode      MatchMode `json:"mode,omitempty"`
	Suggest   bool      `json:"suggest,omitempty"` // add "did you mean" suggestions
}

// Validate ensures the search query has valid fields and sets defaults.
// defaultLimit and maxLimit come from configuration; non-positive values fall back to 5 and 100.
func (q *SearchQuery) Validate(defaultLimit, maxLimit int) error {
	if strings.TrimSpace(q.Query) == "" {
		return ErrEmptyQuery
	}
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.MaxRadius != nil && *q.MaxRadius < 0 {
		zero := 0
		q.MaxRadius = &zero
	}
	switch q.Mode {
	case MatchTokens, MatchTitles:
	default:
		q.Mode = MatchTokens
	}
	return nil
}
