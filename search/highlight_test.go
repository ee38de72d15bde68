package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight_WrapsMatches(t *testing.T) {
	got := Highlight("Pay the invoice today. Invoice is overdue.", []string{"invoice"}, 0)
	assert.Equal(t, "Pay the <mark>invoice</mark> today. <mark>Invoice</mark> is overdue.", got)
}

func TestHighlight_MultipleTokens(t *testing.T) {
	got := Highlight("budget forecast attached", []string{"budget", "forecast"}, 0)
	assert.Equal(t, "<mark>budget</mark> <mark>forecast</mark> attached", got)
}

func TestHighlight_NoMatch(t *testing.T) {
	assert.Equal(t, "", Highlight("nothing relevant here", []string{"invoice"}, 0))
	assert.Equal(t, "", Highlight("", []string{"invoice"}, 0))
	assert.Equal(t, "", Highlight("some text", nil, 0))
}

func TestHighlight_TokenMatchingMarkerText(t *testing.T) {
	// A query token that happens to spell part of the marker must only match
	// the original text, never markers inserted for earlier tokens.
	got := Highlight("invoice attached", []string{"invoice", "mark"}, 0)
	assert.Equal(t, "<mark>invoice</mark> attached", got)

	got = Highlight("remark on the invoice", []string{"invoice", "mark"}, 0)
	assert.Equal(t, "re<mark>mark</mark> on the <mark>invoice</mark>", got)
}

func TestHighlight_OverlappingTokens(t *testing.T) {
	got := Highlight("the invoice", []string{"invoice", "voice"}, 0)
	assert.Equal(t, "the <mark>invoice</mark>", got)
}

func TestHighlight_TruncatesAroundFirstMatch(t *testing.T) {
	text := strings.Repeat("x", 300) + " needle " + strings.Repeat("y", 100)

	got := Highlight(text, []string{"needle"}, 50)

	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "<mark>needle</mark>")
	// 50-character window plus the two ellipsis markers.
	assert.LessOrEqual(t, len(got), 56)
}

func TestHighlight_NoTruncationUnderCap(t *testing.T) {
	got := Highlight("short needle text", []string{"needle"}, 200)
	assert.Equal(t, "short <mark>needle</mark> text", got)
}

func TestHighlight_CaseInsensitive(t *testing.T) {
	got := Highlight("DeFi and defi", []string{"defi"}, 0)
	assert.Equal(t, "<mark>DeFi</mark> and <mark>defi</mark>", got)
}
