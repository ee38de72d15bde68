package badger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeysSortByTimestamp(t *testing.T) {
	// Ordered timestamps spanning the zero time, pre-epoch and post-epoch;
	// their encoded keys must sort the same way.
	timestamps := []time.Time{
		{},
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Unix(-1, 0),
		time.Unix(0, 0),
		time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for i := 1; i < len(timestamps); i++ {
		prev := makePartialQueryLogDateKey(timestamps[i-1])
		next := makePartialQueryLogDateKey(timestamps[i])
		assert.Negative(t, bytes.Compare(prev, next),
			"key for %v must sort before key for %v", timestamps[i-1], timestamps[i])
	}
}

func TestDateKeyPartialIsPrefix(t *testing.T) {
	ts := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	full := makeQueryLogDateKey(ts, 42)
	partial := makePartialQueryLogDateKey(ts)

	assert.True(t, bytes.HasPrefix(full, partial))
}
