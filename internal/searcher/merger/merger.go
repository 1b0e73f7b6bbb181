// Package merger keeps the best-scoring candidates of a query in a bounded,
// always-sorted collection.
package merger

import "sort"

// DefaultLimit is the number of results kept when no limit is given.
const DefaultLimit = 3

// Candidate is an item position with its relevance, weight and final score.
type Candidate struct {
	Position  int
	Relevance float64
	Weight    float64
	Score     float64
}

// TopK holds at most limit candidates ordered by descending score. Equal
// scores are ordered by ascending position, i.e. input order.
type TopK struct {
	limit int
	items []Candidate
}

func NewTopK(limit int) *TopK {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &TopK{
		limit: limit,
		items: make([]Candidate, 0, limit),
	}
}

// Offer inserts c at its rank and drops whatever falls past the limit. It
// reports whether c was kept.
func (t *TopK) Offer(c Candidate) bool {
	rank := sort.Search(len(t.items), func(i int) bool {
		return ranksBefore(c, t.items[i])
	})
	if rank >= t.limit {
		return false
	}
	if len(t.items) < t.limit {
		t.items = append(t.items, Candidate{})
	}
	copy(t.items[rank+1:], t.items[rank:len(t.items)-1])
	t.items[rank] = c
	return true
}

func (t *TopK) Len() int { return len(t.items) }

// Items returns the kept candidates, best first.
func (t *TopK) Items() []Candidate {
	out := make([]Candidate, len(t.items))
	copy(out, t.items)
	return out
}

func ranksBefore(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Position < b.Position
}
