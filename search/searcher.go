package search

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
	"github.com/poiesic/maildex/index"
)

const (
	// Documents scoring at or below this normalized threshold are dropped.
	scoreThreshold = 0.1
	// At most this many results are returned per query.
	maxResults = 50

	partialMatchBonus     = 0.5
	exactPhraseMultiplier = 1.5
	recencyWindowDays     = 30.0
	recencyBonusWeight    = 0.2

	summaryFallbackLength = 150
)

// Searcher ranks documents against free-text queries using the token index.
type Searcher struct {
	index   *index.Index
	builder *index.Builder
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the clock used for the recency bonus.
// Default is time.Now. Tests inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// NewSearcher creates a new searcher over the given caller-owned index.
// The builder is used for lazy rebuilds when the index is empty.
func NewSearcher(ix *index.Index, builder *index.Builder, opts ...Option) (*Searcher, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if builder == nil {
		return nil, ErrBuilderRequired
	}

	s := &Searcher{
		index:   ix,
		builder: builder,
		logger:  slog.Default(),
		now:     time.Now,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the given documents against the query and returns at most 50
// results ordered by descending relevance. An empty or whitespace query
// yields no results, and any internal failure degrades to an empty result
// list rather than an error.
func (s *Searcher) Search(query string, docs []*core.Document) []*core.SearchResult {
	return s.SearchWithMonitor(query, docs, nil)
}

// SearchWithMonitor searches with monitoring. The monitor receives callbacks
// at each stage of the search process.
func (s *Searcher) SearchWithMonitor(query string, docs []*core.Document, monitor SearchMonitor) (results []*core.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search degraded to empty results", "query", query, "panic", r)
			results = []*core.SearchResult{}
		}
	}()

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if strings.TrimSpace(query) == "" {
		return []*core.SearchResult{}
	}

	// Lazy build: an empty index is rebuilt from the supplied snapshot.
	if s.index.Len() == 0 {
		if err := s.builder.Build(s.index, docs...); err != nil {
			s.logger.Error("lazy index build failed", "err", err)
			return []*core.SearchResult{}
		}
		monitor.AfterIndexBuild(s.index.Len())
	}

	queryTokens := analysis.TokenizeQuery(query)
	monitor.AfterQueryTokenize(queryTokens)

	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	norm := float64(len(queryTokens)*2 + 1)

	results = make([]*core.SearchResult, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		entry, ok := s.index.Entry(doc.Id)
		if !ok {
			continue
		}

		score := s.scoreDocument(doc, entry, queryTokens, lowerQuery)
		monitor.DocumentScored(doc.Id, score)

		relevance := math.Min(math.Max(score/norm, 0), 1)
		if relevance <= scoreThreshold {
			continue
		}

		results = append(results, &core.SearchResult{
			Document:      doc,
			Relevance:     relevance,
			MatchedFields: matchedFields(doc, queryTokens),
			Summary:       summarize(doc.Body, queryTokens),
			Highlights:    fieldHighlights(doc, queryTokens),
		})
	}

	// Sort by relevance descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	monitor.Finish(results)

	return results
}

// scoreDocument computes the raw (un-normalized) score of one document.
func (s *Searcher) scoreDocument(doc *core.Document, entry *core.IndexEntry, queryTokens []string, lowerQuery string) float64 {
	var score float64

	for _, token := range queryTokens {
		if containsToken(entry.Tokens, token) {
			weight := entry.Weights[token]
			if weight == 0 {
				weight = 1
			}
			score += weight
		}
		// One flat bonus per query token with at least one partial match,
		// no matter how many indexed tokens it brushes against.
		if hasPartialMatch(entry.Tokens, token) {
			score += partialMatchBonus
		}
	}

	// Exact-phrase bonus on the verbatim query.
	haystack := strings.ToLower(doc.Subject + " " + doc.Body)
	if lowerQuery != "" && strings.Contains(haystack, lowerQuery) {
		score *= exactPhraseMultiplier
	}

	// Recency bonus decays linearly over 30 days.
	days := s.now().Sub(doc.Date).Hours() / 24
	score += math.Max(0, (recencyWindowDays-days)/recencyWindowDays) * recencyBonusWeight

	return score
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// hasPartialMatch reports whether the query token is a strict substring of,
// or strictly contains, any indexed token.
func hasPartialMatch(tokens []string, queryToken string) bool {
	for _, t := range tokens {
		if t == queryToken {
			continue
		}
		if strings.Contains(t, queryToken) || strings.Contains(queryToken, t) {
			return true
		}
	}
	return false
}

// matchedFields returns the document fields matching any query token: either
// the field text contains the token, or the token contains one of the
// field's own tokens ("payment" matches a body that says "pay").
func matchedFields(doc *core.Document, queryTokens []string) []core.Field {
	var fields []core.Field
	for _, field := range []struct {
		name core.Field
		text string
	}{
		{core.FieldSubject, doc.Subject},
		{core.FieldBody, doc.Body},
		{core.FieldFrom, doc.From},
	} {
		if fieldMatches(field.text, queryTokens) {
			fields = append(fields, field.name)
		}
	}
	return fields
}

func fieldMatches(text string, queryTokens []string) bool {
	lower := strings.ToLower(text)
	fieldTokens := analysis.Tokenize(text)
	for _, token := range queryTokens {
		if strings.Contains(lower, token) {
			return true
		}
		for _, ft := range fieldTokens {
			if strings.Contains(token, ft) {
				return true
			}
		}
	}
	return false
}

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// summarize picks the body sentence densest in query terms, falling back to
// a 150-character prefix when no sentence matches.
func summarize(body string, queryTokens []string) string {
	sentences := sentenceBoundary.Split(body, -1)

	best := ""
	bestCount := 0
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		count := 0
		for _, token := range queryTokens {
			if strings.Contains(lower, token) {
				count++
			}
		}
		if count > bestCount {
			best = strings.TrimSpace(sentence)
			bestCount = count
		}
	}
	if best != "" {
		return best
	}

	if len(body) > summaryFallbackLength {
		return strings.TrimSpace(body[:summaryFallbackLength]) + "..."
	}
	return strings.TrimSpace(body)
}

// fieldHighlights produces per-field highlight snippets: subject uncapped,
// body capped at 200, sender capped at 100. A field is included only when a
// highlight actually occurred.
func fieldHighlights(doc *core.Document, queryTokens []string) []core.Highlight {
	highlights := make([]core.Highlight, 0, 3)

	if h := Highlight(doc.Subject, queryTokens, 0); h != "" {
		highlights = append(highlights, core.Highlight{Field: core.FieldSubject, Snippet: h})
	}
	if h := Highlight(doc.Body, queryTokens, 200); h != "" {
		highlights = append(highlights, core.Highlight{Field: core.FieldBody, Snippet: h})
	}
	if h := Highlight(doc.From, queryTokens, 100); h != "" && h != doc.From {
		highlights = append(highlights, core.Highlight{Field: core.FieldFrom, Snippet: h})
	}

	return highlights
}
