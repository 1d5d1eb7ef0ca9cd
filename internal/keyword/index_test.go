package keyword

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/hyperjump/shiori/internal/models"
)

func sampleBooks() []models.Document {
	return []models.Document{
		{ID: "12345", Title: "C++ The Programmer", Author: "Bjarne Stroustrup", Category: "Programming", Year: 1997},
		{ID: "67890", Title: "The Pragmatic The Programmer", Author: "Andrew Hunt", Category: "Software Engineering", Year: 1999},
		{ID: "54321", Title: "Clean Code", Author: "Robert Martin", Category: "Software Engineering", Year: 2008},
	}
}

func buildIndex(t *testing.T, docs []models.Document) *Index {
	t.Helper()
	idx := NewIndex(LevenshteinDistance)
	for _, d := range docs {
		if err := idx.IndexDocument(d); err != nil {
			t.Fatalf("IndexDocument(%s): %v", d.ID, err)
		}
	}
	return idx
}

func TestIndex_Empty(t *testing.T) {
	idx := NewIndex(nil)
	if got := idx.PostingsFor("anything"); len(got) != 0 {
		t.Errorf("PostingsFor on empty index = %v", got)
	}
	if idx.DocumentFrequency("anything") != 0 {
		t.Error("DocumentFrequency on empty index != 0")
	}
	if _, ok := idx.AverageFieldLength(); ok {
		t.Error("AverageFieldLength should be undefined for an empty index")
	}
	if idx.DocCount() != 0 {
		t.Errorf("DocCount = %d", idx.DocCount())
	}
	if got := idx.FuzzyTerms("x", 3); len(got) != 0 {
		t.Errorf("FuzzyTerms on empty index = %v", got)
	}
}

func TestIndex_IndexDocumentRejectsMissingID(t *testing.T) {
	idx := NewIndex(nil)
	err := idx.IndexDocument(models.Document{Title: "No ID"})
	if !errors.Is(err, models.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
	if idx.DocCount() != 0 {
		t.Error("rejected document was counted")
	}
}

func TestIndex_Postings(t *testing.T) {
	idx := buildIndex(t, sampleBooks())

	tests := []struct {
		token    string
		expected []string
	}{
		{"programmer", []string{"12345", "67890"}},
		{"the", []string{"12345", "67890"}},
		{"engineering", []string{"54321", "67890"}},
		{"clean", []string{"54321"}},
		{"stroustrup", []string{"12345"}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		got := idx.PostingsFor(tt.token)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("PostingsFor(%q) = %v, want %v", tt.token, got, tt.expected)
		}
		if df := idx.DocumentFrequency(tt.token); df != len(tt.expected) {
			t.Errorf("DocumentFrequency(%q) = %d, want %d", tt.token, df, len(tt.expected))
		}
	}
	if !idx.Contains("clean", "54321") || idx.Contains("clean", "12345") || idx.Contains("clean", "nope") {
		t.Error("Contains returned wrong membership")
	}
}

func TestIndex_FieldLengths(t *testing.T) {
	idx := buildIndex(t, sampleBooks())
	// "c the programmer bjarne stroustrup programming"
	if got := idx.FieldLength("12345"); got != 6 {
		t.Errorf("FieldLength(12345) = %d, want 6", got)
	}
	// "the pragmatic the programmer andrew hunt software engineering"
	if got := idx.FieldLength("67890"); got != 8 {
		t.Errorf("FieldLength(67890) = %d, want 8", got)
	}
	// "clean code robert martin software engineering"
	if got := idx.FieldLength("54321"); got != 6 {
		t.Errorf("FieldLength(54321) = %d, want 6", got)
	}
	avg, ok := idx.AverageFieldLength()
	if !ok || avg != 20.0/3.0 {
		t.Errorf("AverageFieldLength = %v, %v; want %v, true", avg, ok, 20.0/3.0)
	}
	if idx.FieldLength("unknown") != 0 {
		t.Error("FieldLength of unknown document != 0")
	}
}

func TestIndex_IndexDocumentIdempotent(t *testing.T) {
	once := buildIndex(t, sampleBooks())
	twice := buildIndex(t, append(sampleBooks(), sampleBooks()...))

	if once.DocCount() != twice.DocCount() {
		t.Errorf("DocCount %d vs %d", once.DocCount(), twice.DocCount())
	}
	if !reflect.DeepEqual(once.Terms(), twice.Terms()) {
		t.Errorf("vocabulary differs: %v vs %v", once.Terms(), twice.Terms())
	}
	for _, term := range once.Terms() {
		if !reflect.DeepEqual(once.PostingsFor(term), twice.PostingsFor(term)) {
			t.Errorf("postings for %q differ", term)
		}
		if once.DocumentFrequency(term) != twice.DocumentFrequency(term) {
			t.Errorf("df for %q differs", term)
		}
	}
	a1, _ := once.AverageFieldLength()
	a2, _ := twice.AverageFieldLength()
	if a1 != a2 {
		t.Errorf("average field length %v vs %v", a1, a2)
	}
	if once.VocabularySize() != twice.VocabularySize() {
		t.Errorf("vocabulary size %d vs %d", once.VocabularySize(), twice.VocabularySize())
	}
}

func TestIndex_FuzzyTerms(t *testing.T) {
	idx := buildIndex(t, sampleBooks())
	var got []string
	for _, m := range idx.FuzzyTerms("programer", 1) {
		got = append(got, m.Term)
	}
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"programmer"}) {
		t.Errorf("FuzzyTerms(programer, 1) = %v", got)
	}
}

func TestIndex_Titles(t *testing.T) {
	idx := buildIndex(t, sampleBooks())
	if got := idx.TitlePostingsFor("clean code"); !reflect.DeepEqual(got, []string{"54321"}) {
		t.Errorf("TitlePostingsFor(clean code) = %v", got)
	}
	matches := idx.FuzzyTitles("clean cod", 1)
	if len(matches) != 1 || matches[0].Term != "clean code" || matches[0].Distance != 1 {
		t.Errorf("FuzzyTitles(clean cod, 1) = %+v", matches)
	}
	if got := idx.FuzzyTitles("clean cod", 0); len(got) != 0 {
		t.Errorf("FuzzyTitles(clean cod, 0) = %+v", got)
	}
}

func BenchmarkIndex_IndexDocument(b *testing.B) {
	books := sampleBooks()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx := NewIndex(LevenshteinDistance)
		for _, d := range books {
			_ = idx.IndexDocument(d)
		}
	}
}
