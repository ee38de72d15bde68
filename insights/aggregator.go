package insights

import (
	"sort"

	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
)

const (
	maxTopTerms    = 10
	maxSuggestions = 5
	// Result counts above this suggest the query was too broad.
	broadResultsThreshold = 100
)

// Canned saved-search suggestions appended after term combinations.
var cannedSuggestions = []string{
	"is:starred",
	"has:attachment",
	"newer_than:7d",
}

// Canned tips keyed off past result counts.
const (
	tipNoResults    = "Some searches returned no results. Try broader terms or check for typos."
	tipBroadResults = "Some searches returned over 100 results. Add more specific terms to narrow them down."
)

// Summarize aggregates a query log into usage insights. An empty log yields
// zeroed aggregates; Summarize never fails.
func Summarize(entries []*core.QueryLogEntry) *core.Insights {
	result := &core.Insights{
		TopTerms:          []core.TermCount{},
		CategoryBreakdown: []core.CategoryShare{},
		SuggestedSearches: []string{},
		Tips:              []string{},
	}
	if len(entries) == 0 {
		return result
	}

	termCounts := make(map[string]int)
	categoryCounts := make(map[core.Category]int)
	sawEmpty := false
	sawBroad := false

	for _, entry := range entries {
		if entry == nil {
			continue
		}

		for _, token := range analysis.TokenizeQuery(entry.Query) {
			termCounts[token]++
		}

		result.HourlyDistribution[entry.Timestamp.Hour()]++

		categoryCounts[analysis.Classify(entry.Query).Category]++

		if entry.ResultsCount == 0 {
			sawEmpty = true
		}
		if entry.ResultsCount > broadResultsThreshold {
			sawBroad = true
		}
	}

	result.TopTerms = topTerms(termCounts, maxTopTerms)
	result.CategoryBreakdown = categoryShares(categoryCounts, len(entries))
	result.SuggestedSearches = suggestions(result.TopTerms)

	if sawEmpty {
		result.Tips = append(result.Tips, tipNoResults)
	}
	if sawBroad {
		result.Tips = append(result.Tips, tipBroadResults)
	}

	return result
}

// topTerms returns the n most frequent terms, most frequent first.
// Ties are broken alphabetically for deterministic output.
func topTerms(counts map[string]int, n int) []core.TermCount {
	terms := make([]core.TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, core.TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

// categoryShares converts category counts to integer percentages of the
// total query count, sorted by descending share.
func categoryShares(counts map[core.Category]int, total int) []core.CategoryShare {
	shares := make([]core.CategoryShare, 0, len(counts))
	for category, count := range counts {
		shares = append(shares, core.CategoryShare{
			Category: category,
			Percent:  count * 100 / total,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percent != shares[j].Percent {
			return shares[i].Percent > shares[j].Percent
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// suggestions builds up to five saved-search strings from the two most
// frequent terms plus the canned set.
func suggestions(top []core.TermCount) []string {
	suggested := make([]string, 0, maxSuggestions)
	if len(top) >= 2 {
		suggested = append(suggested, top[0].Term+" "+top[1].Term)
	}
	if len(top) >= 1 {
		suggested = append(suggested, top[0].Term)
	}
	if len(top) >= 2 {
		suggested = append(suggested, top[1].Term)
	}
	for _, canned := range cannedSuggestions {
		if len(suggested) == maxSuggestions {
			break
		}
		suggested = append(suggested, canned)
	}
	return suggested
}
