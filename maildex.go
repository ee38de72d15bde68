// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package maildex

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
	"github.com/poiesic/maildex/index"
	"github.com/poiesic/maildex/insights"
	"github.com/poiesic/maildex/search"
	"github.com/poiesic/maildex/storage"
	"github.com/poiesic/maildex/storage/badger"
)

// Engine bundles the search index, the relevance scorer and the persistent
// query log behind one facade. The document collection itself stays with the
// mail collaborator: documents are passed into every call that needs them.
type Engine struct {
	backend  *badger.Backend
	queryLog storage.QueryLogRepository
	index    *index.Index
	builder  *index.Builder
	searcher *search.Searcher
	logger   *slog.Logger
	now      func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	poolSize int
	now      func() time.Time
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPoolSize sets the index builder's worker pool size.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithClock sets the clock used for recency scoring and query-log
// timestamps. Default is time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(o *engineOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Engine with a persistent query log at filePath.
func New(filePath string, opts ...EngineOption) (*Engine, error) {
	return newEngine(filePath, false, opts...)
}

// NewInMemory creates an Engine whose query log lives only in memory.
// Intended for tests and throwaway sessions.
func NewInMemory(opts ...EngineOption) (*Engine, error) {
	return newEngine("", true, opts...)
}

func newEngine(filePath string, inMemory bool, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	queryLog, err := badger.NewQueryLog(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	builderOpts := []index.Option{index.WithLogger(options.logger)}
	if options.poolSize > 0 {
		builderOpts = append(builderOpts, index.WithPoolSize(options.poolSize))
	}
	builder, err := index.NewBuilder(builderOpts...)
	if err != nil {
		queryLog.Close()
		backend.Close()
		return nil, err
	}

	ix := index.New()
	searcher, err := search.NewSearcher(ix, builder,
		search.WithLogger(options.logger),
		search.WithClock(options.now),
	)
	if err != nil {
		builder.Release()
		queryLog.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:  backend,
		queryLog: queryLog,
		index:    ix,
		builder:  builder,
		searcher: searcher,
		logger:   options.logger,
		now:      options.now,
	}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	e.builder.Release()

	if err := e.queryLog.Close(); err != nil {
		e.logger.Error("error closing query log", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// BuildIndex replaces the index with entries built from docs. Search builds
// the index lazily when it finds it empty, so calling this explicitly is
// only needed to rebuild after the underlying collection changed.
func (e *Engine) BuildIndex(docs ...*core.Document) error {
	return e.builder.Build(e.index, docs...)
}

// InvalidateIndex discards the index. The next search rebuilds it from the
// documents it is given.
func (e *Engine) InvalidateIndex() {
	e.index.Invalidate()
}

// Search ranks docs against query and records the query in the log so that
// Insights has history to work from. Search itself never fails; a query-log
// write failure is logged and swallowed.
func (e *Engine) Search(ctx context.Context, query string, docs []*core.Document) []*core.SearchResult {
	return e.SearchWithMonitor(ctx, query, docs, nil)
}

// SearchWithMonitor is Search with per-stage observer callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, docs []*core.Document, monitor search.SearchMonitor) []*core.SearchResult {
	results := e.searcher.SearchWithMonitor(query, docs, monitor)

	// Blank queries yield no results and are not worth remembering.
	if strings.TrimSpace(query) == "" {
		return results
	}

	if _, err := e.queryLog.Append(ctx, &core.QueryLogEntry{
		Query:        query,
		Timestamp:    e.now(),
		ResultsCount: len(results),
	}); err != nil {
		e.logger.Warn("failed to record query", "query", query, "err", err)
	}

	return results
}

// FindSimilar returns up to 10 candidates most similar to doc.
func (e *Engine) FindSimilar(doc *core.Document, candidates []*core.Document) []*core.Document {
	return search.FindSimilar(doc, candidates)
}

// Classify returns the semantic category and typed terms of a raw query.
func (e *Engine) Classify(query string) core.QueryCategory {
	return analysis.Classify(query)
}

// Insights aggregates the persisted query log into usage insights.
func (e *Engine) Insights(ctx context.Context) (*core.Insights, error) {
	entries, err := e.queryLog.All(ctx)
	if err != nil {
		return nil, err
	}
	return insights.Summarize(entries), nil
}

// QueryLog exposes the underlying query log repository.
func (e *Engine) QueryLog() storage.QueryLogRepository {
	return e.queryLog
}
