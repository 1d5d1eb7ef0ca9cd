package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/shiori/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query:     "clean cod",
		QueryTime: 3,
		Total:     2,
		Radius:    1,
		Results: []*models.SearchResult{
			{
				Rank:         1,
				Score:        0.6931,
				Radius:       0,
				MatchedTerms: []string{"clean"},
				Document:     models.Document{ID: "1", Title: "Clean Code", Author: "Robert Martin", Category: "Software", Year: 2008},
			},
			{
				Rank:     2,
				Score:    0.3466,
				Radius:   1,
				Document: models.Document{ID: "2", Title: "Clean Coder", Author: "Robert Martin", Category: "Software", Year: 2011},
			},
		},
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	response := sampleResponse()
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != response.Query || decoded.Total != 2 {
		t.Errorf("decoded query=%q total=%d", decoded.Query, decoded.Total)
	}
	if len(decoded.Results) != 2 || decoded.Results[1].Document.Year != 2011 {
		t.Errorf("decoded results = %+v", decoded.Results)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 2 results", "3ms", "radius 1", "Rank: 1", "ID: 1", "Title: Clean Code", "Author: Robert Martin", "Year: 2011", "Matched: clean"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	want := "Found Book: Clean Code by Robert Martin\nFound Book: Clean Coder by Robert Martin\n"
	if buf.String() != want {
		t.Errorf("compact output = %q, want %q", buf.String(), want)
	}
}

func TestWriteSearchResults_noResults(t *testing.T) {
	response := &models.SearchResponse{Query: "zzz", Results: []*models.SearchResult{}, Suggestions: []string{"zen"}}
	for _, format := range []SearchOutputFormat{OutputText, OutputCompact, SearchOutputFormat("unknown")} {
		var buf bytes.Buffer
		if err := WriteSearchResults(&buf, response, format); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.Contains(out, "No books found for the query: zzz") {
			t.Errorf("%s: missing no-results line:\n%s", format, out)
		}
		if !strings.Contains(out, "Did you mean: zen?") {
			t.Errorf("%s: missing suggestion:\n%s", format, out)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    SearchOutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"compact", OutputCompact, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"multibyte", "日本語の本", 3, "日本語..."},
		{"maxLen zero", "ab", 0, "ab"},
		{"maxLen negative", "ab", -1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWords int
		want     string
	}{
		{"empty", "", 3, ""},
		{"few words", "one two", 3, "one two"},
		{"exact", "one two three", 3, "one two three"},
		{"more", "one two three four", 3, "one two three..."},
		{"single long", "word", 1, "word"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWords(tt.s, tt.maxWords)
			if got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.s, tt.maxWords, got, tt.want)
			}
		})
	}
}
