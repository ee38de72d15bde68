package maildex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/maildex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewInMemory(WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNew(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "maildex_db")
		engine, err := New(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.QueryLog())
		assert.NotNil(t, engine.backend)
		assert.NotNil(t, engine.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the database directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		engine, err := New(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := NewInMemory()
	require.NoError(t, err)

	assert.NoError(t, engine.Close())
}

func TestEngine_SearchLogsQueries(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	docs := []*core.Document{
		{Id: "a", Subject: "quarterly invoice", Body: "pay by friday", Date: testNow.Add(-time.Hour)},
		{Id: "b", Subject: "team lunch", Date: testNow.Add(-time.Hour)},
	}

	results := engine.Search(ctx, "invoice", docs)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Document.Id)

	entries, err := engine.QueryLog().All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "invoice", entries[0].Query)
	assert.Equal(t, 1, entries[0].ResultsCount)
}

func TestEngine_BlankQueryNotLogged(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	assert.Empty(t, engine.Search(ctx, "   ", nil))

	entries, err := engine.QueryLog().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEngine_IndexLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	docs := []*core.Document{
		{Id: "a", Subject: "release notes", Date: testNow},
	}
	require.NoError(t, engine.BuildIndex(docs...))

	// A changed collection is invisible until the index is invalidated.
	changed := []*core.Document{
		{Id: "a", Subject: "release notes", Date: testNow},
		{Id: "b", Subject: "release retrospective", Date: testNow},
	}
	results := engine.Search(ctx, "retrospective", changed)
	assert.Empty(t, results)

	engine.InvalidateIndex()
	results = engine.Search(ctx, "retrospective", changed)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Document.Id)
}

func TestEngine_FindSimilar(t *testing.T) {
	engine := newTestEngine(t)

	source := &core.Document{Id: "a", Subject: "staking rewards overview", Body: "validator staking rewards explained"}
	twin := &core.Document{Id: "b", Subject: "staking rewards overview", Body: "validator staking rewards explained"}
	other := &core.Document{Id: "c", Subject: "cafeteria menu", Body: "soup of the day"}

	similar := engine.FindSimilar(source, []*core.Document{source, twin, other})
	require.Len(t, similar, 1)
	assert.Equal(t, "b", similar[0].Id)
}

func TestEngine_Classify(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.Classify("contact john@example.com")
	assert.Equal(t, core.CategorySender, result.Category)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
}

func TestEngine_Insights(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	docs := []*core.Document{
		{Id: "a", Subject: "invoice march", Body: "amount due", Date: testNow.Add(-time.Hour)},
	}
	engine.Search(ctx, "invoice march", docs)
	engine.Search(ctx, "invoice april", docs)

	result, err := engine.Insights(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, result.TopTerms)
	assert.Equal(t, "invoice", result.TopTerms[0].Term)
	assert.Equal(t, 2, result.TopTerms[0].Count)
}
