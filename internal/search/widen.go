package search

import (
	"context"
	"sort"
	"strings"

	"github.com/hyperjump/shiori/internal/keyword"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/ranking"
)

// hit is an accumulated result: scored once, at the radius it was first found.
type hit struct {
	docID   string
	score   float64
	radius  int
	matched []string
}

// option is one way a query token (or the whole query, for titles) matched a document.
type option struct {
	term     string
	distance int
}

// widen queries the index at radius 0, 1, ... maxRadius and stops once at
// least target distinct documents are accumulated. It returns the hits sorted
// by descending score then ascending id, truncated to target, and the last
// radius queried.
func (e *Engine) widen(ctx context.Context, text string, mode models.MatchMode, target, maxRadius int) ([]hit, int, error) {
	tokens := keyword.Tokenize(text)
	if len(tokens) == 0 || len(e.corpus) == 0 || target <= 0 {
		return nil, 0, nil
	}

	found := make(map[string]*hit)
	radius := 0
	for r := 0; r <= maxRadius; r++ {
		if err := ctx.Err(); err != nil {
			return nil, radius, err
		}
		radius = r

		var candidates map[string][][]option
		if mode == models.MatchTitles {
			candidates = e.titleCandidates(tokens, r)
		} else {
			candidates = e.tokenCandidates(tokens, r)
		}

		ids := make([]string, 0, len(candidates))
		for id := range candidates {
			if _, seen := found[id]; !seen {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			score, matched := e.score(id, candidates[id])
			found[id] = &hit{docID: id, score: score, radius: r, matched: matched}
		}

		if len(found) >= target {
			break
		}
	}

	scored := make([]ranking.ScoredDoc, 0, len(found))
	for id, h := range found {
		scored = append(scored, ranking.ScoredDoc{DocID: id, Score: h.score})
	}
	ranking.SortScored(scored)
	if len(scored) > target {
		scored = scored[:target]
	}
	hits := make([]hit, len(scored))
	for i, sd := range scored {
		hits[i] = *found[sd.DocID]
	}
	return hits, radius, nil
}

// tokenCandidates maps each document reachable at radius r to, per query
// token, the vocabulary terms that matched it.
func (e *Engine) tokenCandidates(tokens []string, r int) map[string][][]option {
	candidates := make(map[string][][]option)
	for i, tok := range tokens {
		for _, m := range e.index.FuzzyTerms(tok, r) {
			for _, id := range e.index.PostingsFor(m.Term) {
				opts, ok := candidates[id]
				if !ok {
					opts = make([][]option, len(tokens))
					candidates[id] = opts
				}
				opts[i] = append(opts[i], option{term: m.Term, distance: m.Distance})
			}
		}
	}
	return candidates
}

// titleCandidates matches the normalized query against whole titles. Each
// document gets a single group holding its title when the title is within r.
func (e *Engine) titleCandidates(tokens []string, r int) map[string][][]option {
	candidates := make(map[string][][]option)
	query := strings.Join(tokens, " ")
	for _, m := range e.index.FuzzyTitles(query, r) {
		for _, id := range e.index.TitlePostingsFor(m.Term) {
			candidates[id] = [][]option{{{term: m.Term, distance: m.Distance}}}
		}
	}
	return candidates
}

// score sums, over option groups, the best single-term contribution. A term
// matched at distance d is weighted 1/(1+d). Title options spread their weight
// over the distinct title tokens.
func (e *Engine) score(docID string, groups [][]option) (float64, []string) {
	var total float64
	var matched []string
	for _, group := range groups {
		best, bestTerm := 0.0, ""
		for _, opt := range group {
			weight := 1 / float64(1+opt.distance)
			s := e.scorer.Score(e.index, weightedTokens(opt.term, weight), docID)
			if bestTerm == "" || s > best || (s == best && opt.term < bestTerm) {
				best, bestTerm = s, opt.term
			}
		}
		if bestTerm != "" {
			total += best
			matched = append(matched, bestTerm)
		}
	}
	return total, matched
}

// weightedTokens splits term into its distinct tokens, each carrying weight.
// A vocabulary term is a single token.
func weightedTokens(term string, weight float64) []ranking.WeightedTerm {
	var terms []ranking.WeightedTerm
	seen := make(map[string]bool)
	for tok := range keyword.Tokens(term) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		terms = append(terms, ranking.WeightedTerm{Term: tok, Weight: weight})
	}
	return terms
}
