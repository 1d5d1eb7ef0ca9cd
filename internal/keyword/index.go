package keyword

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/hyperjump/shiori/internal/models"
)

// Index is the inverted index over the composite field (title, author,
// category) of every document. Each vocabulary token is stored in a BKTree
// for fuzzy lookup and owns a posting set of document ordinals. Whole
// normalized titles get a second BKTree and posting map for title-level
// matching.
//
// Postings are sets, so the within-document term frequency exposed here is
// binary: a term is either present in a document or not.
//
// Index is not safe for concurrent mutation. Once built it may be read from
// multiple goroutines.
type Index struct {
	vocabulary *BKTree
	postings   map[string]*roaring.Bitmap

	titles        *BKTree
	titlePostings map[string]*roaring.Bitmap

	ordinals    map[string]uint32
	ids         []string
	lengths     []int
	totalLength int
}

// NewIndex returns an empty index whose BK-trees use metric.
func NewIndex(metric Metric) *Index {
	return &Index{
		vocabulary:    NewBKTree(metric),
		postings:      make(map[string]*roaring.Bitmap),
		titles:        NewBKTree(metric),
		titlePostings: make(map[string]*roaring.Bitmap),
		ordinals:      make(map[string]uint32),
	}
}

// IndexDocument tokenizes the document's composite field and adds the
// document to the posting set of every token. Indexing the same document
// again leaves postings, document count and field lengths unchanged.
func (idx *Index) IndexDocument(doc models.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: missing id", models.ErrInvalidDocument)
	}
	ord, known := idx.ordinals[doc.ID]
	if !known {
		ord = uint32(len(idx.ids))
		idx.ordinals[doc.ID] = ord
		idx.ids = append(idx.ids, doc.ID)
		idx.lengths = append(idx.lengths, 0)
	}

	length := 0
	for tok := range Tokens(doc.IndexedText()) {
		length++
		addPosting(idx.postings, idx.vocabulary, tok, ord)
	}
	idx.totalLength += length - idx.lengths[ord]
	idx.lengths[ord] = length

	if title := NormalizeTitle(doc.Title); title != "" {
		addPosting(idx.titlePostings, idx.titles, title, ord)
	}
	return nil
}

func addPosting(postings map[string]*roaring.Bitmap, tree *BKTree, key string, ord uint32) {
	bm, ok := postings[key]
	if !ok {
		bm = roaring.New()
		postings[key] = bm
		tree.Insert(key)
	}
	bm.Add(ord)
}

// PostingsFor returns the ids of the documents containing token, sorted.
// Unknown tokens yield an empty slice.
func (idx *Index) PostingsFor(token string) []string {
	return idx.resolve(idx.postings[token])
}

// TitlePostingsFor returns the ids of the documents whose normalized title is title.
func (idx *Index) TitlePostingsFor(title string) []string {
	return idx.resolve(idx.titlePostings[title])
}

func (idx *Index) resolve(bm *roaring.Bitmap) []string {
	if bm == nil {
		return []string{}
	}
	ids := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		ids = append(ids, idx.ids[it.Next()])
	}
	sort.Strings(ids)
	return ids
}

// DocumentFrequency returns the number of documents containing token.
func (idx *Index) DocumentFrequency(token string) int {
	bm, ok := idx.postings[token]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Contains reports whether the document docID contains token.
func (idx *Index) Contains(token, docID string) bool {
	bm, ok := idx.postings[token]
	if !ok {
		return false
	}
	ord, ok := idx.ordinals[docID]
	return ok && bm.Contains(ord)
}

// FieldLength returns the token count of the document's composite field, or 0
// for an unknown document.
func (idx *Index) FieldLength(docID string) int {
	ord, ok := idx.ordinals[docID]
	if !ok {
		return 0
	}
	return idx.lengths[ord]
}

// AverageFieldLength returns the mean composite field length. ok is false when
// no documents are indexed, in which case the average is undefined.
func (idx *Index) AverageFieldLength() (avg float64, ok bool) {
	if len(idx.ids) == 0 {
		return 0, false
	}
	return float64(idx.totalLength) / float64(len(idx.ids)), true
}

// DocCount returns the number of distinct indexed documents.
func (idx *Index) DocCount() int {
	return len(idx.ids)
}

// FuzzyTerms returns the vocabulary tokens within maxDistance of token.
func (idx *Index) FuzzyTerms(token string, maxDistance int) []Match {
	return idx.vocabulary.Search(token, maxDistance)
}

// FuzzyTitles returns the normalized titles within maxDistance of title.
func (idx *Index) FuzzyTitles(title string, maxDistance int) []Match {
	return idx.titles.Search(title, maxDistance)
}

// ContainsTerm reports whether token is in the vocabulary.
func (idx *Index) ContainsTerm(token string) bool {
	_, ok := idx.postings[token]
	return ok
}

// TermFrequency returns the document frequency of token. It lets Index serve
// as the SpellChecker's dictionary.
func (idx *Index) TermFrequency(token string) int {
	return idx.DocumentFrequency(token)
}

// Terms returns the vocabulary, sorted.
func (idx *Index) Terms() []string {
	terms := idx.vocabulary.Terms()
	sort.Strings(terms)
	return terms
}

// VocabularySize returns the number of distinct tokens.
func (idx *Index) VocabularySize() int {
	return idx.vocabulary.Len()
}
