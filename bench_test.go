package autocomplete

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkRunSample measures the two classic queries against the two-item
// sample index.
func BenchmarkRunSample(b *testing.B) {
	idx := BuildIndex(sampleItems())
	queries := []struct {
		name       string
		query      string
		completion bool
		fuzzy      bool
	}{
		{"completion", "fou", true, false},
		{"fuzzy", "there", false, true},
	}
	for _, q := range queries {
		b.Run(q.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Run(idx, q.query, q.completion, q.fuzzy); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

var benchWords = []string{
	"distributed", "search", "analytics", "platform", "indexing",
	"query", "engine", "ranking", "station", "central", "berlin", "hamburg",
}

func benchItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID: fmt.Sprintf("item-%d", i),
			Name: fmt.Sprintf("%s %s %d",
				benchWords[i%len(benchWords)], benchWords[(i*7+3)%len(benchWords)], i),
			Weight: float64(i%100 + 1),
		}
	}
	return items
}

// BenchmarkBuildIndex measures index construction for growing item counts.
func BenchmarkBuildIndex(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		items := benchItems(n)
		b.Run(fmt.Sprintf("items_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = BuildIndex(items)
			}
		})
	}
}

// BenchmarkRunCorpus measures exact, completion and fuzzy queries over
// 10 000 items.
func BenchmarkRunCorpus(b *testing.B) {
	idx := BuildIndex(benchItems(10000))
	modes := []struct {
		name       string
		query      string
		completion bool
		fuzzy      bool
	}{
		{"exact", "berlin station", false, false},
		{"completion", "ber sta", true, false},
		{"fuzzy", "berlni", false, true},
		{"both", "hambrg cent", true, true},
	}
	for _, m := range modes {
		b.Run(m.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Run(idx, m.query, m.completion, m.fuzzy); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRunBatch(b *testing.B) {
	idx := BuildIndex(benchItems(10000))
	e, err := NewEngine(defaultEngine().exec.Config(), nil)
	if err != nil {
		b.Fatal(err)
	}
	queries := make([]Query, 0, len(benchWords))
	for _, w := range benchWords {
		queries = append(queries, Query{Text: w[:3], Completion: true})
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.RunBatch(context.Background(), idx, queries); err != nil {
			b.Fatal(err)
		}
	}
}
