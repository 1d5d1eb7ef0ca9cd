// Package search runs fuzzy BM25 queries over an in-memory catalog.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/keyword"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/ranking"
)

// Engine owns the corpus and its indices. Build it by adding documents, then
// query it; an engine that is no longer mutated may be searched concurrently.
type Engine struct {
	corpus  map[string]models.Document
	index   *keyword.Index
	scorer  *ranking.Scorer
	speller *keyword.SpellChecker
	config  *config.SearchConfig
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an empty engine. A nil cfg uses the default search settings.
func NewEngine(cfg *config.SearchConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = &config.Default().Search
	}
	metric, err := keyword.MetricByName(cfg.Metric)
	if err != nil {
		return nil, err
	}
	index := keyword.NewIndex(metric)
	e := &Engine{
		corpus:  make(map[string]models.Document),
		index:   index,
		scorer:  ranking.NewScorer(cfg.BM25),
		speller: keyword.NewSpellChecker(index, keyword.WithMaxSuggestions(max(cfg.Suggestions, 1))),
		config:  cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Add stores doc and indexes it. Adding an identical document again is a
// no-op; a different document under a known id is rejected.
func (e *Engine) Add(doc models.Document) error {
	if existing, ok := e.corpus[doc.ID]; ok {
		if existing == doc {
			return nil
		}
		return fmt.Errorf("%w: %s", models.ErrDuplicateDocument, doc.ID)
	}
	if err := e.index.IndexDocument(doc); err != nil {
		return err
	}
	e.corpus[doc.ID] = doc
	return nil
}

// Get returns the document with id.
func (e *Engine) Get(id string) (models.Document, bool) {
	doc, ok := e.corpus[id]
	return doc, ok
}

// Len returns the number of documents in the corpus.
func (e *Engine) Len() int {
	return len(e.corpus)
}

// Stats summarizes an engine for status reporting.
type Stats struct {
	Documents          int     `json:"documents"`
	Vocabulary         int     `json:"vocabulary"`
	AverageFieldLength float64 `json:"average_field_length"`
	MaxRadius          int     `json:"max_radius"`
	Metric             string  `json:"metric"`
	Mode               string  `json:"mode"`
}

// Stats returns corpus and configuration figures.
func (e *Engine) Stats() Stats {
	avg, _ := e.index.AverageFieldLength()
	return Stats{
		Documents:          len(e.corpus),
		Vocabulary:         e.index.VocabularySize(),
		AverageFieldLength: avg,
		MaxRadius:          e.config.MaxRadiusOrDefault(),
		Metric:             e.config.Metric,
		Mode:               e.config.Mode,
	}
}

// Find returns up to target documents for queryText, best first, using the
// configured mode and radius cap.
func (e *Engine) Find(queryText string, target int) []models.Document {
	hits, _, _ := e.widen(context.Background(), queryText, models.MatchMode(e.config.Mode), target, e.config.MaxRadiusOrDefault())
	docs := make([]models.Document, len(hits))
	for i, h := range hits {
		docs[i] = e.corpus[h.docID]
	}
	return docs
}

// Search validates a copy of q and runs it; q itself is left untouched. A
// requested MaxRadius can lower the configured cap but never raise it. An
// empty corpus yields an empty response.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	query := *q
	if query.Mode == "" {
		query.Mode = models.MatchMode(e.config.Mode)
	}
	if err := query.Validate(e.config.DefaultLimit, e.config.MaxLimit); err != nil {
		return nil, err
	}
	maxRadius := e.config.MaxRadiusOrDefault()
	if query.MaxRadius != nil {
		maxRadius = min(*query.MaxRadius, maxRadius)
	}

	hits, radius, err := e.widen(ctx, query.Query, query.Mode, query.Limit, maxRadius)
	if err != nil {
		return nil, err
	}

	response := &models.SearchResponse{
		Results: make([]*models.SearchResult, 0, len(hits)),
		Total:   len(hits),
		Radius:  radius,
		Query:   query.Query,
	}
	for i, h := range hits {
		response.Results = append(response.Results, &models.SearchResult{
			Document:     e.corpus[h.docID],
			Score:        h.score,
			Radius:       h.radius,
			MatchedTerms: h.matched,
			Rank:         i + 1,
		})
	}
	if query.Suggest {
		response.Suggestions = e.suggest(query.Query)
	}
	response.QueryTime = time.Since(startTime).Milliseconds()

	e.logger.Debug("search",
		zap.String("query", query.Query),
		zap.String("mode", string(query.Mode)),
		zap.Int("radius", radius),
		zap.Int("results", len(hits)),
		zap.Int64("query_time_ms", response.QueryTime),
	)
	return response, nil
}

// suggest returns corrected queries when some query token is not in the vocabulary.
func (e *Engine) suggest(query string) []string {
	return e.speller.GetTopSuggestions(query, e.config.Suggestions)
}
