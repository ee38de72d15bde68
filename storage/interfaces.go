package storage

import (
	"context"
	"time"

	"github.com/poiesic/maildex/core"
)

// QueryLogRepository provides operations for the persistent query log
// consumed by the insights aggregator.
// Implementations must be thread-safe and support concurrent access.
type QueryLogRepository interface {
	// Append adds entries to the log. Entries with Id=0 get a
	// content-based ID derived from query and timestamp, which makes
	// re-appending the same entry idempotent. Sets InsertedAt if unset.
	// Returns the entries with IDs and timestamps populated.
	Append(ctx context.Context, entries ...*core.QueryLogEntry) ([]*core.QueryLogEntry, error)

	// Get retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	Get(ctx context.Context, id core.ID) (*core.QueryLogEntry, error)

	// All retrieves every logged entry, ordered by timestamp ascending.
	All(ctx context.Context) ([]*core.QueryLogEntry, error)

	// ByDateRange retrieves entries where start <= Timestamp < end,
	// ordered by timestamp ascending.
	ByDateRange(ctx context.Context, start, end time.Time) ([]*core.QueryLogEntry, error)

	// Recent retrieves up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]*core.QueryLogEntry, error)

	// Delete removes entries by their IDs.
	// Returns ErrNotFound if any entry doesn't exist.
	Delete(ctx context.Context, ids ...core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}
