package index

import (
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
)

// Field weights accumulated into IndexEntry.Weights. A token appearing in
// several fields sums its weights.
const (
	subjectWeight = 2.0
	fromWeight    = 1.5
	bodyWeight    = 1.0
)

// Coarse category keyword tables. These are intentionally crude: category
// tagging belongs to the content classification collaborator, the index only
// keeps cheap tags around for filtering.
var (
	financialWords = []string{"invoice", "payment", "receipt", "transaction", "refund", "bill", "$"}
	web3Words      = []string{"nft", "token", "defi", "dao", "wallet", "airdrop", "blockchain", "crypto"}
)

// Builder constructs index entries for document collections.
// Entry construction fans out over a worker pool; Build returns only after
// the full snapshot has been assembled and swapped into the index.
type Builder struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for entry construction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder.
func NewBuilder(opts ...Option) (*Builder, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}

	return b, nil
}

// Build replaces the contents of ix with entries for the given documents.
// Rebuilding is idempotent and safe to call repeatedly; prior state is
// always discarded. Documents without an ID are skipped with a warning.
func (b *Builder) Build(ix *Index, docs ...*core.Document) error {
	if ix == nil {
		return ErrNilIndex
	}

	entries := make(map[string]*core.IndexEntry, len(docs))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := core.ValidateDocument(doc); err != nil {
			b.logger.Warn("skipping unindexable document", "err", err)
			continue
		}

		doc := doc
		wg.Add(1)
		task := func() {
			defer wg.Done()
			entry := BuildEntry(doc)
			mu.Lock()
			entries[doc.Id] = entry
			mu.Unlock()
		}
		if err := b.pool.Submit(task); err != nil {
			// Pool exhausted or released; build the entry inline so the
			// snapshot stays complete.
			task()
		}
	}

	wg.Wait()
	ix.replace(entries)
	return nil
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// BuildEntry constructs the index entry for a single document. Pure function;
// exposed for callers that index one document at a time.
func BuildEntry(doc *core.Document) *core.IndexEntry {
	subjectTokens := analysis.Tokenize(doc.Subject)
	bodyTokens := analysis.Tokenize(doc.Body)
	fromTokens := analysis.Tokenize(doc.From)

	weights := make(map[string]float64, len(subjectTokens)+len(bodyTokens)+len(fromTokens))
	for _, token := range subjectTokens {
		weights[token] += subjectWeight
	}
	for _, token := range fromTokens {
		weights[token] += fromWeight
	}
	for _, token := range bodyTokens {
		weights[token] += bodyWeight
	}

	tokens := make([]string, 0, len(subjectTokens)+len(bodyTokens)+len(fromTokens))
	tokens = append(tokens, subjectTokens...)
	tokens = append(tokens, bodyTokens...)
	tokens = append(tokens, fromTokens...)

	fullText := doc.Subject + " " + doc.Body + " " + doc.From

	return &core.IndexEntry{
		DocumentId: doc.Id,
		Tokens:     tokens,
		Entities:   analysis.ExtractEntities(fullText),
		Categories: categorize(doc),
		Weights:    weights,
	}
}

// categorize derives the coarse category tags for a document using
// constant-time keyword checks.
func categorize(doc *core.Document) []string {
	text := strings.ToLower(doc.Subject + " " + doc.Body)

	var categories []string
	if containsAny(text, financialWords) {
		categories = append(categories, "financial")
	}
	if containsAny(text, web3Words) || len(analysis.ExtractAddressTerms(text)) > 0 {
		categories = append(categories, "web3")
	}
	if doc.Important {
		categories = append(categories, "important")
	}
	if doc.Starred {
		categories = append(categories, "starred")
	}
	return categories
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
