// Package models defines core data structures for catalog documents, queries, and search results.
package models

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyQuery is returned when a search request carries no query text.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrInvalidDocument is returned when a document is missing its ID.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrDuplicateDocument is returned when a different document is added under an existing ID.
	ErrDuplicateDocument = errors.New("duplicate document id")
)

// Document is a single catalog record. Documents are immutable once added to an engine.
type Document struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Author   string `json:"author" db:"author"`
	Category string `json:"category" db:"category"`
	Year     int    `json:"year" db:"year"`
}

// IndexedText returns the composite field that is tokenized for search:
// title, author and category joined by spaces.
func (d Document) IndexedText() string {
	return strings.Join([]string{d.Title, d.Author, d.Category}, " ")
}
