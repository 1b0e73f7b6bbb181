// Package autocomplete ranks named, weighted items against partial queries.
//
// Build an index once, then query it as often as needed:
//
//	idx := autocomplete.BuildIndex([]autocomplete.Item{
//	    {ID: "A", Name: "One fOUr!", Weight: 10},
//	    {ID: "B", Name: "two THREE four?", Weight: 20},
//	})
//	results, err := autocomplete.Run(idx, "fou", true, false)
//
// Matching combines exact tokens, prefix completion and, optionally,
// Levenshtein fuzzy matching. Relevance is blended with item weight and the
// top results are returned in descending score order, ties broken by input
// order.
//
// An Index is immutable once built; to reflect changed items, build a new
// one. Queries against one Index may run concurrently.
package autocomplete

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/synchronous-autocomplete/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	Item   = index.Item
	Index  = index.Index
	Result = executor.Result
	Query  = executor.Query
)

var defaultEngine = sync.OnceValue(func() *Engine {
	return mustEngine(config.DefaultEngine())
})

// BuildIndex indexes items in input order.
func BuildIndex(items []Item) *Index {
	return index.Build(items)
}

// Run queries idx with the default engine settings: up to three results and
// linear weighting.
func Run(idx *Index, query string, completion, fuzzy bool) ([]Result, error) {
	return defaultEngine().Run(idx, query, completion, fuzzy)
}

// Engine is a configured query evaluator with optional metrics.
type Engine struct {
	exec    *executor.Executor
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewEngine creates an Engine from cfg. m may be nil.
func NewEngine(cfg config.EngineConfig, m *metrics.Metrics) (*Engine, error) {
	exec, err := executor.New(cfg, m)
	if err != nil {
		return nil, err
	}
	return &Engine{
		exec:    exec,
		metrics: m,
		logger:  logger.WithComponent("autocomplete"),
	}, nil
}

// Open loads configuration from path (empty for defaults), installs the
// configured logger as the process-wide slog default and, when enabled,
// registers metrics with reg. reg must be non-nil when metrics are enabled;
// each Open registers a fresh collector set, so pass a new registry per call.
func Open(path string, reg prometheus.Registerer) (*Engine, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled && reg == nil {
		return nil, apperrors.New(apperrors.ErrInvalidConfig, "metrics enabled without a registerer")
	}
	logger.Setup(nil, cfg.Logging.Level, cfg.Logging.Format)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m, err = metrics.New(reg, cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
	}
	e, err := NewEngine(cfg.Engine, m)
	if err != nil {
		return nil, err
	}
	e.logger.Info("autocomplete engine ready",
		"top_k", cfg.Engine.TopK,
		"weight_exponent", cfg.Engine.WeightExponent,
		"max_edit_distance", cfg.Engine.MaxEditDistance,
		"require_all_fragments", cfg.Engine.RequireAllFragments,
		"metrics", cfg.Metrics.Enabled,
	)
	return e, nil
}

// Build indexes items and records the build in the engine's metrics.
func (e *Engine) Build(items []Item) *Index {
	idx := index.Build(items)
	stats := idx.Stats()
	e.metrics.ObserveBuild(stats.Items, stats.Tokens)
	return idx
}

func (e *Engine) Run(idx *Index, query string, completion, fuzzy bool) ([]Result, error) {
	return e.exec.Run(idx, query, completion, fuzzy)
}

// Query runs query with the completion and fuzzy flags from the engine
// configuration.
func (e *Engine) Query(idx *Index, query string) ([]Result, error) {
	cfg := e.exec.Config()
	return e.exec.Run(idx, query, cfg.Completion, cfg.Fuzzy)
}

func (e *Engine) RunBatch(ctx context.Context, idx *Index, queries []Query) ([][]Result, error) {
	return e.exec.RunBatch(ctx, idx, queries)
}

func mustEngine(cfg config.EngineConfig) *Engine {
	e, err := NewEngine(cfg, nil)
	if err != nil {
		panic(err)
	}
	return e
}
