package storage

import (
	"testing"
	"time"

	"github.com/poiesic/maildex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLogEntryRoundTrip(t *testing.T) {
	entry := &core.QueryLogEntry{
		Id:           core.IDFromContent("invoice payment|x"),
		Query:        "invoice payment",
		Timestamp:    time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
		ResultsCount: 12,
		InsertedAt:   time.Date(2025, 6, 10, 9, 30, 1, 0, time.UTC),
	}

	data := MarshalQueryLogEntry(entry)
	got, err := UnmarshalQueryLogEntry(data)
	require.NoError(t, err)

	assert.Equal(t, entry.Id, got.Id)
	assert.Equal(t, entry.Query, got.Query)
	assert.True(t, entry.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, entry.ResultsCount, got.ResultsCount)
	assert.True(t, entry.InsertedAt.Equal(got.InsertedAt))
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("some query")

	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalQueryLogEntry_Truncated(t *testing.T) {
	entry := &core.QueryLogEntry{
		Id:        42,
		Query:     "hello world",
		Timestamp: time.Now().UTC(),
	}
	data := MarshalQueryLogEntry(entry)

	_, err := UnmarshalQueryLogEntry(data[:3])
	assert.Error(t, err)
}

func TestQueryLogEntrySkip(t *testing.T) {
	entry := &core.QueryLogEntry{
		Id:        7,
		Query:     "skip me",
		Timestamp: time.Now().UTC(),
	}
	data := MarshalQueryLogEntry(entry)

	n, err := QueryLogEntryMUS.Skip(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
}
