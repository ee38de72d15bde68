package search

import (
	"regexp"
	"sort"
	"strings"
)

// Markup wrapped around matched substrings. Consumers render this as inline
// emphasis.
const (
	markStart = "<mark>"
	markEnd   = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of every query token in
// text with <mark> markers. It returns the empty string when no token
// matches. If the marked text exceeds maxLength the result is truncated to a
// window centered on the first marker, with "..." at truncated ends.
// A maxLength of 0 disables truncation.
func Highlight(text string, queryTokens []string, maxLength int) string {
	if text == "" || len(queryTokens) == 0 {
		return ""
	}

	// Collect match spans against the original text for every token before
	// inserting any markers; replacing token by token would let a later
	// token match inside markers inserted for an earlier one.
	var spans [][2]int
	for _, token := range queryTokens {
		if token == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token))
		for _, m := range pattern.FindAllStringIndex(text, -1) {
			spans = append(spans, [2]int{m[0], m[1]})
		}
	}
	if len(spans) == 0 {
		return ""
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] > spans[j][1]
	})

	// Overlapping spans from different tokens collapse into one marker.
	merged := spans[:1]
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span[0] <= last[1] {
			if span[1] > last[1] {
				last[1] = span[1]
			}
			continue
		}
		merged = append(merged, span)
	}

	var b strings.Builder
	prev := 0
	for _, span := range merged {
		b.WriteString(text[prev:span[0]])
		b.WriteString(markStart)
		b.WriteString(text[span[0]:span[1]])
		b.WriteString(markEnd)
		prev = span[1]
	}
	b.WriteString(text[prev:])
	marked := b.String()

	if maxLength <= 0 || len(marked) <= maxLength {
		return marked
	}

	// Truncate to a window around the first highlight: roughly a third of
	// the budget before the marker, the rest after.
	first := strings.Index(marked, markStart)
	start := first - maxLength/3
	if start < 0 {
		start = 0
	}
	end := start + maxLength
	if end > len(marked) {
		end = len(marked)
	}

	snippet := marked[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(marked) {
		snippet += "..."
	}
	return snippet
}
