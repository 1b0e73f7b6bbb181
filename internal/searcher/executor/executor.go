// Package executor evaluates autocomplete queries against an index. A query
// is normalised into fragments; each fragment is scored by the ranker and
// the per-fragment relevances of an item are multiplied together, seeded
// with 1/token count of the item. The final score blends relevance with the
// item weight and the best results are kept in a bounded ranking.
package executor

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Result is one ranked item.
type Result struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Relevance float64 `json:"relevance"`
	Score     float64 `json:"score"`
}

// Query is one entry of a batch.
type Query struct {
	Text       string `json:"text"`
	Completion bool   `json:"completion"`
	Fuzzy      bool   `json:"fuzzy"`
}

// Executor runs queries. It holds no per-query state and is safe for
// concurrent use as long as the indexes it reads are not modified.
type Executor struct {
	cfg     config.EngineConfig
	scorer  *ranker.Scorer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates an Executor. m may be nil.
func New(cfg config.EngineConfig, m *metrics.Metrics) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Executor{
		cfg:     cfg,
		scorer:  ranker.New(cfg.MaxEditDistance, nil),
		metrics: m,
		logger:  logger.WithComponent("query-executor"),
	}, nil
}

// Config returns the engine configuration the Executor was built with.
func (e *Executor) Config() config.EngineConfig {
	return e.cfg
}

// Run returns at most TopK results for query, best first. An empty query, or
// one without any word characters, yields no results. An error is returned
// only when idx violates its invariants, and always wraps
// errors.ErrInvalidIndex.
func (e *Executor) Run(idx *index.Index, query string, completion, fuzzy bool) ([]Result, error) {
	start := time.Now()
	results, resultType, err := e.run(idx, query, completion, fuzzy)
	e.metrics.ObserveQuery(resultType, len(results), time.Since(start))
	return results, err
}

func (e *Executor) run(idx *index.Index, query string, completion, fuzzy bool) ([]Result, string, error) {
	if query == "" {
		return []Result{}, metrics.ResultEmpty, nil
	}
	if idx == nil {
		return nil, metrics.ResultError, apperrors.New(apperrors.ErrInvalidIndex, "nil index")
	}
	fragments := tokenizer.Tokenize(query)
	if len(fragments) == 0 {
		return []Result{}, metrics.ResultEmpty, nil
	}

	relevances := make(map[int]float64)
	matched := make(map[int]int)
	for _, fragment := range fragments {
		byPosition, err := e.scorer.ScoreFragment(idx, fragment, completion, fuzzy)
		if err != nil {
			return nil, metrics.ResultError, err
		}
		for pos, fragmentRelevance := range byPosition {
			running, ok := relevances[pos]
			if !ok {
				tokenCount, err := idx.TokenCount(pos)
				if err != nil {
					return nil, metrics.ResultError, err
				}
				running = 1 / float64(tokenCount)
			}
			relevances[pos] = running * fragmentRelevance
			matched[pos]++
		}
	}

	positions := make([]int, 0, len(relevances))
	for pos := range relevances {
		if e.cfg.RequireAllFragments && matched[pos] < len(fragments) {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	top := merger.NewTopK(e.cfg.TopK)
	for _, pos := range positions {
		weight, err := idx.Weight(pos)
		if err != nil {
			return nil, metrics.ResultError, err
		}
		relevance := relevances[pos]
		top.Offer(merger.Candidate{
			Position:  pos,
			Relevance: relevance,
			Weight:    weight,
			Score:     relevance * e.dampen(weight),
		})
	}

	results := make([]Result, 0, top.Len())
	for _, c := range top.Items() {
		id, err := idx.OriginalID(c.Position)
		if err != nil {
			return nil, metrics.ResultError, err
		}
		results = append(results, Result{
			ID:        id,
			Weight:    c.Weight,
			Relevance: c.Relevance,
			Score:     c.Score,
		})
	}

	e.logger.Debug("query executed",
		"query", query,
		"fragments", fragments,
		"candidates", len(positions),
		"returned", len(results),
	)
	if len(results) == 0 {
		return results, metrics.ResultNoMatch, nil
	}
	return results, metrics.ResultHit, nil
}

func (e *Executor) dampen(weight float64) float64 {
	if e.cfg.WeightExponent == 1 {
		return weight
	}
	return math.Pow(weight, e.cfg.WeightExponent)
}

// RunBatch evaluates queries concurrently against idx, at most
// BatchConcurrency at a time. Results are returned in query order. The first
// error cancels the remaining queries.
func (e *Executor) RunBatch(ctx context.Context, idx *index.Index, queries []Query) ([][]Result, error) {
	out := make([][]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.BatchConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := e.Run(idx, q.Text, q.Completion, q.Fuzzy)
			if err != nil {
				return err
			}
			out[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error("batch query failed", "queries", len(queries), "error", err)
		return nil, err
	}
	return out, nil
}
