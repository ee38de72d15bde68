package analysis

import (
	"regexp"
	"strings"

	"github.com/poiesic/maildex/core"
)

// Entity and term detection patterns. Go's regexp engine is stateless, so
// package-level patterns are safe for concurrent existence checks and match
// enumeration alike.
var (
	walletAddressPattern = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)
	nameServicePattern   = regexp.MustCompile(`\b[a-zA-Z0-9-]+\.(?:eth|sol)\b`)
	emailPattern         = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}(?:[/\-.]\d{2,4})?\b`),
		regexp.MustCompile(`(?i)\b(?:today|yesterday|tomorrow)\b`),
		regexp.MustCompile(`(?i)\b(?:last|next)\s+(?:week|month|year)\b`),
		regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\b`),
	}

	amountPattern = regexp.MustCompile(`(?i)[$€£]\s?\d+(?:[.,]\d+)?|\b\d+(?:[.,]\d+)?\s?(?:eth|btc|usd|eur)\b`)
)

// Term confidence levels per detector.
const (
	personConfidence  = 0.9
	addressConfidence = 0.95
	dateConfidence    = 0.8
	amountConfidence  = 0.85
	keywordConfidence = 0.6
)

// ExtractEntities returns every address-like substring of text, verbatim:
// hex wallet addresses, ENS/SNS name-service domains, and email addresses.
func ExtractEntities(text string) []string {
	var entities []string
	entities = append(entities, walletAddressPattern.FindAllString(text, -1)...)
	entities = append(entities, nameServicePattern.FindAllString(text, -1)...)
	entities = append(entities, emailPattern.FindAllString(text, -1)...)
	return entities
}

// TermExtractor detects typed terms in raw text.
// Extractors are composed in a fixed order by Classify.
type TermExtractor func(text string) []core.TypedTerm

// ExtractPersonTerms returns each email address in text as a person term.
func ExtractPersonTerms(text string) []core.TypedTerm {
	return termsFromMatches(emailPattern.FindAllString(text, -1), core.TermTypePerson, personConfidence)
}

// ExtractAddressTerms returns each hex wallet address in text as an address term.
func ExtractAddressTerms(text string) []core.TypedTerm {
	return termsFromMatches(walletAddressPattern.FindAllString(text, -1), core.TermTypeAddress, addressConfidence)
}

// ExtractDateTerms returns each date expression in text as a date term.
// Recognized forms: numeric dates, today/yesterday/tomorrow, last/next
// week/month/year, and month names.
func ExtractDateTerms(text string) []core.TypedTerm {
	var terms []core.TypedTerm
	for _, pattern := range datePatterns {
		terms = append(terms, termsFromMatches(pattern.FindAllString(text, -1), core.TermTypeDate, dateConfidence)...)
	}
	return terms
}

// ExtractAmountTerms returns each currency amount in text as an amount term.
// Matches a currency symbol followed by a number, or a number followed by
// ETH, BTC, USD or EUR.
func ExtractAmountTerms(text string) []core.TypedTerm {
	return termsFromMatches(amountPattern.FindAllString(text, -1), core.TermTypeAmount, amountConfidence)
}

// ExtractKeywordTerms returns the stop-word-filtered tokens of text longer
// than 3 characters as keyword terms.
func ExtractKeywordTerms(text string) []core.TypedTerm {
	var terms []core.TypedTerm
	for _, token := range TokenizeQuery(text) {
		if len(token) > 3 {
			terms = append(terms, core.TypedTerm{
				Type:       core.TermTypeKeyword,
				Value:      token,
				Confidence: keywordConfidence,
			})
		}
	}
	return terms
}

func termsFromMatches(matches []string, termType core.TermType, confidence float64) []core.TypedTerm {
	terms := make([]core.TypedTerm, 0, len(matches))
	for _, match := range matches {
		terms = append(terms, core.TypedTerm{
			Type:       termType,
			Value:      match,
			Confidence: confidence,
		})
	}
	return terms
}

// coveredBy reports whether token already appears inside one of the given
// term values, ignoring case.
func coveredBy(token string, terms []core.TypedTerm) bool {
	for _, term := range terms {
		if strings.Contains(strings.ToLower(term.Value), token) {
			return true
		}
	}
	return false
}
