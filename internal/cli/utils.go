// Package cli provides output helpers for the shiori command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/shiori/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact prints one "Found Book" line per result.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat maps a flag value to a format. Unknown values are an error.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(strings.ToLower(s)); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q: use text, compact or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	if len(response.Results) == 0 {
		fmt.Fprintf(w, "No books found for the query: %s\n", response.Query)
		writeSuggestions(w, response.Suggestions)
		return
	}
	for _, result := range response.Results {
		fmt.Fprintf(w, "Found Book: %s by %s\n", result.Document.Title, result.Document.Author)
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	if len(response.Results) == 0 {
		fmt.Fprintf(w, "\nNo books found for the query: %s\n", response.Query)
		writeSuggestions(w, response.Suggestions)
		return
	}
	fmt.Fprintf(w, "\nFound %d results in %dms (radius %d)\n\n", response.Total, response.QueryTime, response.Radius)
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
	writeSuggestions(w, response.Suggestions)
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	doc := result.Document
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f | Radius: %d\n", result.Rank, result.Score, result.Radius)
	fmt.Fprintf(w, "ID: %s\n", doc.ID)
	fmt.Fprintf(w, "Title: %s\n", Truncate(doc.Title, 80))
	fmt.Fprintf(w, "Author: %s | Category: %s | Year: %d\n", doc.Author, doc.Category, doc.Year)
	if len(result.MatchedTerms) > 0 {
		fmt.Fprintf(w, "Matched: %s\n", TruncateWords(strings.Join(result.MatchedTerms, ", "), 10))
	}
	fmt.Fprintln(w)
}

func writeSuggestions(w io.Writer, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(suggestions, " | "))
}

// Truncate truncates s to maxLen runes and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
