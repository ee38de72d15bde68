package analysis

import (
	"regexp"
	"strings"
)

// Characters outside word chars, whitespace, @ and . are treated as separators.
var nonTokenChars = regexp.MustCompile(`[^\w\s@.]`)

// Stop words excluded from query term analysis
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true,
}

// Tokenize normalizes raw text into a filtered sequence of lowercase terms.
// Punctuation other than @ and . becomes whitespace, and tokens of length
// two or less are dropped.
func Tokenize(text string) []string {
	cleaned := nonTokenChars.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleaned)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// TokenizeQuery tokenizes text like Tokenize and additionally removes
// common English stop words.
func TokenizeQuery(text string) []string {
	tokens := Tokenize(text)
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !stopWords[token] {
			filtered = append(filtered, token)
		}
	}
	return filtered
}

// IsStopWord reports whether the given token is in the stop-word set.
func IsStopWord(token string) bool {
	return stopWords[token]
}
