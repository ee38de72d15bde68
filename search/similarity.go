package search

import (
	"sort"

	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
)

const (
	similarityThreshold = 0.3
	maxSimilar          = 10
)

// FindSimilar returns up to 10 candidates most similar to doc, ordered by
// descending token-set overlap. The source document itself is never
// included, and candidates below the 0.3 similarity threshold are dropped.
// Similarity is symmetric and needs no index.
func FindSimilar(doc *core.Document, candidates []*core.Document) (similar []*core.Document) {
	defer func() {
		if r := recover(); r != nil {
			similar = []*core.Document{}
		}
	}()

	if doc == nil {
		return []*core.Document{}
	}

	source := tokenSet(doc)

	type scoredDoc struct {
		doc   *core.Document
		score float64
	}
	var matches []scoredDoc
	for _, candidate := range candidates {
		if candidate == nil || candidate.Id == doc.Id {
			continue
		}
		score := jaccard(source, tokenSet(candidate))
		if score > similarityThreshold {
			matches = append(matches, scoredDoc{candidate, score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxSimilar {
		matches = matches[:maxSimilar]
	}

	similar = make([]*core.Document, len(matches))
	for i, match := range matches {
		similar[i] = match.doc
	}
	return similar
}

// Similarity computes the Jaccard similarity of the token sets of two
// documents over subject and body. Two documents with no tokens at all have
// similarity 0 rather than the undefined 0/0.
func Similarity(a, b *core.Document) float64 {
	return jaccard(tokenSet(a), tokenSet(b))
}

func tokenSet(doc *core.Document) map[string]struct{} {
	tokens := analysis.Tokenize(doc.Subject + " " + doc.Body)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
