package search

import (
	"testing"

	"github.com/poiesic/maildex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity_IdenticalTokenSets(t *testing.T) {
	a := &core.Document{Id: "a", Subject: "DeFi yield farming", Body: "best apy rates"}
	b := &core.Document{Id: "b", Subject: "yield farming DeFi", Body: "rates apy best"}

	assert.InDelta(t, 1.0, Similarity(a, b), 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := &core.Document{Id: "a", Subject: "project roadmap", Body: "milestones and deliverables"}
	b := &core.Document{Id: "b", Subject: "roadmap review", Body: "deliverables slipped"}

	assert.InDelta(t, Similarity(a, b), Similarity(b, a), 1e-9)
}

func TestSimilarity_BothEmpty(t *testing.T) {
	a := &core.Document{Id: "a"}
	b := &core.Document{Id: "b"}

	// 0/0 is defined as zero, not NaN.
	assert.Equal(t, 0.0, Similarity(a, b))
}

func TestFindSimilar_ExcludesSelf(t *testing.T) {
	doc := &core.Document{Id: "a", Subject: "weekly metrics", Body: "traffic conversions revenue"}
	twin := &core.Document{Id: "b", Subject: "weekly metrics", Body: "traffic conversions revenue"}

	similar := FindSimilar(doc, []*core.Document{doc, twin})

	require.Len(t, similar, 1)
	assert.Equal(t, "b", similar[0].Id)
}

func TestFindSimilar_ThresholdAndOrder(t *testing.T) {
	doc := &core.Document{Id: "src", Subject: "invoice payment reminder", Body: "amount overdue balance"}
	candidates := []*core.Document{
		{Id: "close", Subject: "invoice payment reminder", Body: "amount overdue interest"},
		{Id: "far", Subject: "holiday schedule", Body: "office closed next week"},
		{Id: "mid", Subject: "payment reminder", Body: "overdue balance amount invoice extra words here"},
	}

	similar := FindSimilar(doc, candidates)

	require.NotEmpty(t, similar)
	assert.Equal(t, "close", similar[0].Id)
	for _, d := range similar {
		assert.NotEqual(t, "far", d.Id, "documents below the threshold are excluded")
	}
}

func TestFindSimilar_TopTen(t *testing.T) {
	doc := &core.Document{Id: "src", Subject: "release checklist", Body: "deploy verify announce"}

	candidates := make([]*core.Document, 0, 15)
	for i := range 15 {
		candidates = append(candidates, &core.Document{
			Id:      string(rune('a' + i)),
			Subject: "release checklist",
			Body:    "deploy verify announce",
		})
	}

	similar := FindSimilar(doc, candidates)
	assert.Len(t, similar, 10)
}

func TestFindSimilar_NilSource(t *testing.T) {
	assert.Empty(t, FindSimilar(nil, []*core.Document{{Id: "a", Subject: "x y z"}}))
}
