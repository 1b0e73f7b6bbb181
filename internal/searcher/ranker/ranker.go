// Package ranker scores a single query fragment against every token of an
// index. Three strategies contribute to one relevance map keyed by item
// position: exact match (always), prefix completion and fuzzy match.
package ranker

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/indexer/index"
	"github.com/agnivade/levenshtein"
)

// DefaultMaxEditDistance is the largest edit distance a fuzzy match accepts.
const DefaultMaxEditDistance = 3

// Distance computes the edit distance between two tokens.
type Distance func(a, b string) int

// Scorer holds the fuzzy matching parameters. The zero value is not usable;
// call New.
type Scorer struct {
	maxEditDistance int
	distance        Distance
}

// New returns a Scorer accepting fuzzy matches up to maxEditDistance. A nil
// distance selects Levenshtein distance.
func New(maxEditDistance int, distance Distance) *Scorer {
	if distance == nil {
		distance = levenshtein.ComputeDistance
	}
	return &Scorer{
		maxEditDistance: maxEditDistance,
		distance:        distance,
	}
}

// ScoreFragment returns the summed relevance per item position for
// fragment. Each posting contributes separately, so an item containing a
// matching token twice receives the contribution twice.
//
//	exact:      1 + score(fragment) + sqrt(len(fragment))
//	completion: 1 + score(t) + len(fragment)/len(t)
//	fuzzy:      (1 + score(t)) / (1 + distance(fragment, t))
//
// A token that qualifies as a completion is never also scored as fuzzy.
func (s *Scorer) ScoreFragment(idx *index.Index, fragment string, completion, fuzzy bool) (map[int]float64, error) {
	results := make(map[int]float64)
	l := utf8.RuneCountInString(fragment)

	if postings, ok := idx.Postings(fragment); ok {
		score, err := idx.Score(fragment)
		if err != nil {
			return nil, err
		}
		relevance := 1 + score + math.Sqrt(float64(l))
		addPostings(results, postings, relevance)
	}

	if !completion && !fuzzy {
		return results, nil
	}

	for _, token := range idx.Lexicon() {
		if token == fragment {
			continue
		}
		tokenLength := utf8.RuneCountInString(token)

		var relevance float64
		switch {
		case completion && tokenLength > l && strings.HasPrefix(token, fragment):
			score, err := idx.Score(token)
			if err != nil {
				return nil, err
			}
			relevance = 1 + score + float64(l)/float64(tokenLength)
		case fuzzy:
			// Edit distance is at least the difference in length.
			if abs(tokenLength-l) > s.maxEditDistance {
				continue
			}
			distance := s.distance(fragment, token)
			if distance > s.maxEditDistance {
				continue
			}
			score, err := idx.Score(token)
			if err != nil {
				return nil, err
			}
			relevance = (1 + score) / (1 + float64(distance))
		default:
			continue
		}

		postings, _ := idx.Postings(token)
		addPostings(results, postings, relevance)
	}

	return results, nil
}

func addPostings(results map[int]float64, postings index.PostingList, relevance float64) {
	for _, pos := range postings {
		results[pos] += relevance
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
