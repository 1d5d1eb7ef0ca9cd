package models

import (
	"errors"
	"testing"
)

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   *SearchQuery
		wantErr bool
	}{
		{"empty query", &SearchQuery{Query: ""}, true},
		{"whitespace query", &SearchQuery{Query: "   "}, true},
		{"valid query", &SearchQuery{Query: "hello"}, false},
		{"sets default limit", &SearchQuery{Query: "x", Limit: 0}, false},
		{"caps limit", &SearchQuery{Query: "x", Limit: 200}, false},
		{"unknown mode falls back to tokens", &SearchQuery{Query: "x", Mode: "bogus"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate(5, 100)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyQuery) {
					t.Errorf("expected ErrEmptyQuery, got %v", err)
				}
				return
			}
			if tt.query.Limit <= 0 || tt.query.Limit > 100 {
				t.Errorf("limit not normalized: %d", tt.query.Limit)
			}
			if tt.query.Mode != MatchTokens && tt.query.Mode != MatchTitles {
				t.Errorf("mode not normalized: %q", tt.query.Mode)
			}
		})
	}
}

func TestSearchQuery_ValidateNegativeRadius(t *testing.T) {
	r := -3
	q := &SearchQuery{Query: "x", MaxRadius: &r}
	if err := q.Validate(5, 100); err != nil {
		t.Fatal(err)
	}
	if *q.MaxRadius != 0 {
		t.Errorf("expected radius clamped to 0, got %d", *q.MaxRadius)
	}
}

func TestDocument_IndexedText(t *testing.T) {
	d := Document{ID: "1", Title: "Clean Code", Author: "Robert Martin", Category: "Software", Year: 2008}
	if got := d.IndexedText(); got != "Clean Code Robert Martin Software" {
		t.Errorf("IndexedText() = %q", got)
	}
}
