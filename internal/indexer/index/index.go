// Package index builds the read-only inverted index queried by the searcher.
// Items are assigned internal positions in input order; every token of an
// item's name appends that position to the token's posting list.
package index

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/logger"
)

// Index is an immutable snapshot of a set of items. The exported tables may
// be filled by hand (see Validate), but must not be modified once queries
// run against the index.
type Index struct {
	// Tokens maps a normalised token to its posting list.
	Tokens map[string]PostingList
	// Scores maps a token to len(postings) / item count.
	Scores map[string]float64

	Weights     []float64
	TokenCounts []int
	OriginalIDs []string

	lexicon []string
}

// Build indexes items in order. It never fails: a name without any word
// characters yields an item with zero tokens.
func Build(items []Item) *Index {
	idx := &Index{
		Tokens:      make(map[string]PostingList),
		Scores:      make(map[string]float64),
		Weights:     make([]float64, 0, len(items)),
		TokenCounts: make([]int, 0, len(items)),
		OriginalIDs: make([]string, 0, len(items)),
	}

	for pos, item := range items {
		tokens := tokenizer.Tokenize(item.Name)
		for _, token := range tokens {
			idx.Tokens[token] = append(idx.Tokens[token], pos)
		}
		idx.Weights = append(idx.Weights, item.Weight)
		idx.TokenCounts = append(idx.TokenCounts, len(tokens))
		idx.OriginalIDs = append(idx.OriginalIDs, item.ID)
	}

	if len(items) > 0 {
		total := float64(len(items))
		for token, postings := range idx.Tokens {
			idx.Scores[token] = float64(len(postings)) / total
		}
	}
	idx.lexicon = sortedKeys(idx.Tokens)

	stats := idx.Stats()
	logger.WithComponent("index-builder").Debug("index built",
		"items", stats.Items,
		"tokens", stats.Tokens,
		"postings", stats.Postings,
	)
	return idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	return len(idx.OriginalIDs)
}

// Lexicon returns every distinct token in ascending order. The slice is
// shared and must not be modified.
func (idx *Index) Lexicon() []string {
	if idx.lexicon != nil && len(idx.lexicon) == len(idx.Tokens) {
		return idx.lexicon
	}
	return sortedKeys(idx.Tokens)
}

// Postings returns the posting list for token.
func (idx *Index) Postings(token string) (PostingList, bool) {
	postings, ok := idx.Tokens[token]
	return postings, ok
}

func (idx *Index) Score(token string) (float64, error) {
	score, ok := idx.Scores[token]
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrInvalidIndex, "no score for token %q", token)
	}
	return score, nil
}

func (idx *Index) Weight(pos int) (float64, error) {
	if pos < 0 || pos >= len(idx.Weights) {
		return 0, apperrors.Newf(apperrors.ErrInvalidIndex, "no weight for position %d", pos)
	}
	return idx.Weights[pos], nil
}

// TokenCount returns the number of tokens, repeats included, of the item at
// pos. Positions referenced by a posting list always have a non-zero count.
func (idx *Index) TokenCount(pos int) (int, error) {
	if pos < 0 || pos >= len(idx.TokenCounts) {
		return 0, apperrors.Newf(apperrors.ErrInvalidIndex, "no token count for position %d", pos)
	}
	n := idx.TokenCounts[pos]
	if n <= 0 {
		return 0, apperrors.Newf(apperrors.ErrInvalidIndex, "position %d has postings but %d tokens", pos, n)
	}
	return n, nil
}

func (idx *Index) OriginalID(pos int) (string, error) {
	if pos < 0 || pos >= len(idx.OriginalIDs) {
		return "", apperrors.Newf(apperrors.ErrInvalidIndex, "no original id for position %d", pos)
	}
	return idx.OriginalIDs[pos], nil
}

func (idx *Index) Stats() Stats {
	postings := 0
	for _, list := range idx.Tokens {
		postings += len(list)
	}
	return Stats{
		Items:    idx.Len(),
		Tokens:   len(idx.Tokens),
		Postings: postings,
	}
}

// Validate checks the structural invariants of a hand-built index: the
// per-item tables have equal length, every posting lies in range, scores
// cover exactly the indexed tokens and every item's token count matches its
// postings.
func (idx *Index) Validate() error {
	if idx == nil {
		return apperrors.New(apperrors.ErrInvalidIndex, "nil index")
	}
	n := len(idx.OriginalIDs)
	if len(idx.Weights) != n || len(idx.TokenCounts) != n {
		return apperrors.Newf(apperrors.ErrInvalidIndex,
			"table lengths differ: weights=%d token_counts=%d original_ids=%d",
			len(idx.Weights), len(idx.TokenCounts), n)
	}
	if len(idx.Scores) != len(idx.Tokens) {
		return apperrors.Newf(apperrors.ErrInvalidIndex,
			"%d scores for %d tokens", len(idx.Scores), len(idx.Tokens))
	}

	seen := make([]int, n)
	for token, postings := range idx.Tokens {
		if _, ok := idx.Scores[token]; !ok {
			return apperrors.Newf(apperrors.ErrInvalidIndex, "no score for token %q", token)
		}
		for _, pos := range postings {
			if pos < 0 || pos >= n {
				return apperrors.Newf(apperrors.ErrInvalidIndex,
					"token %q references position %d outside [0, %d)", token, pos, n)
			}
			seen[pos]++
		}
	}
	for pos, count := range idx.TokenCounts {
		if count != seen[pos] {
			return apperrors.Newf(apperrors.ErrInvalidIndex,
				"position %d has token count %d but %d postings", pos, count, seen[pos])
		}
		if w := idx.Weights[pos]; w < 0 || math.IsNaN(w) {
			return apperrors.Newf(apperrors.ErrInvalidIndex, "position %d has weight %v", pos, w)
		}
	}
	return nil
}

func sortedKeys(tokens map[string]PostingList) []string {
	keys := make([]string, 0, len(tokens))
	for token := range tokens {
		keys = append(keys, token)
	}
	sort.Strings(keys)
	return keys
}
