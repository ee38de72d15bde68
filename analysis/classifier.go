package analysis

import "github.com/poiesic/maildex/core"

// detector pairs a term extractor with the category it implies when it fires.
type detector struct {
	category   core.Category
	confidence float64
	extract    TermExtractor
}

// Detectors run in this order. The first one that fires decides the
// category; later detectors still contribute extracted terms.
var queryDetectors = []detector{
	{core.CategorySender, 0.8, ExtractPersonTerms},
	{core.CategoryWeb3, 0.9, ExtractAddressTerms},
	{core.CategoryDate, 0.7, ExtractDateTerms},
	{core.CategoryFinancial, 0.8, ExtractAmountTerms},
}

// Classify inspects a raw query string and returns its semantic category
// together with the typed terms found in it. When no detector fires the
// category defaults to mixed at confidence 0.5. Classify never fails.
func Classify(query string) core.QueryCategory {
	var result core.QueryCategory

	for _, d := range queryDetectors {
		terms := d.extract(query)
		if len(terms) == 0 {
			continue
		}
		result.ExtractedTerms = append(result.ExtractedTerms, terms...)
		if result.Category == 0 {
			result.Category = d.category
			result.Confidence = d.confidence
		}
	}

	// Remaining plain tokens become keyword terms. Tokens already covered by
	// a typed term (an email local part, a date fragment) are not repeated.
	for _, term := range ExtractKeywordTerms(query) {
		if coveredBy(term.Value, result.ExtractedTerms) {
			continue
		}
		result.ExtractedTerms = append(result.ExtractedTerms, term)
	}

	if result.Category == 0 {
		result.Category = core.CategoryMixed
		result.Confidence = 0.5
	}

	return result
}
