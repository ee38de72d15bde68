package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/maildex/core"
	"github.com/poiesic/maildex/storage"
)

// QueryLog implements storage.QueryLogRepository for BadgerDB.
type QueryLog struct {
	backend *Backend
}

var _ storage.QueryLogRepository = (*QueryLog)(nil)

// NewQueryLog creates a new query log repository.
func NewQueryLog(backend *Backend) (storage.QueryLogRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is nil", storage.ErrInvalidQuery)
	}
	return &QueryLog{backend: backend}, nil
}

// Close is a no-op; the backend is owned and closed by the caller.
func (r *QueryLog) Close() error {
	return nil
}

// Append adds entries to the log. Entries with Id=0 get a content-based ID
// derived from the query and timestamp, so re-appending the same entry
// overwrites rather than duplicates.
func (r *QueryLog) Append(ctx context.Context, entries ...*core.QueryLogEntry) ([]*core.QueryLogEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := core.ValidateQueryLogEntry(entry); err != nil {
				return err
			}

			if entry.Id == 0 {
				entry.Id = core.IDFromContent(entry.Query + "|" + entry.Timestamp.UTC().Format(time.RFC3339Nano))
			}
			if entry.InsertedAt.IsZero() {
				entry.InsertedAt = time.Now().UTC()
			}

			// Store primary entry
			key := makeQueryLogKey(entry.Id)
			value := storage.MarshalQueryLogEntry(entry)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeQueryLogDateKey(entry.Timestamp, entry.Id)
			if err := tx.Set(dateKey, storage.MarshalID(entry.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// Get retrieves a single entry by ID.
func (r *QueryLog) Get(ctx context.Context, id core.ID) (*core.QueryLogEntry, error) {
	var result *core.QueryLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEntry(tx, makeQueryLogKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// All retrieves every logged entry, ordered by timestamp ascending.
func (r *QueryLog) All(ctx context.Context) ([]*core.QueryLogEntry, error) {
	return r.ByDateRange(ctx, time.Time{}, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC))
}

// ByDateRange retrieves entries where start <= Timestamp < end,
// ordered by timestamp ascending.
func (r *QueryLog) ByDateRange(ctx context.Context, start, end time.Time) ([]*core.QueryLogEntry, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.QueryLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialQueryLogDateKey(start)
		endKey := makePartialQueryLogDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			entry, err := r.readIndexedEntry(tx, iter.Item())
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// Recent retrieves up to limit entries, most recent first.
func (r *QueryLog) Recent(ctx context.Context, limit int) ([]*core.QueryLogEntry, error) {
	var results []*core.QueryLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible date-index key and walk backwards.
		startKey := makePartialQueryLogDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(queryLogDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			entry, err := r.readIndexedEntry(tx, iter.Item())
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// Delete removes entries by their IDs.
func (r *QueryLog) Delete(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeQueryLogKey(id)

			entry, err := r.readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return storage.ErrNotFound
			}

			dateKey := makeQueryLogDateKey(entry.Timestamp, entry.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readEntry reads and unmarshals one entry; nil when the key is absent.
func (r *QueryLog) readEntry(tx *badger.Txn, key []byte) (*core.QueryLogEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.QueryLogEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalQueryLogEntry(val)
		return err
	})
	return entry, err
}

// readIndexedEntry resolves a date-index item to its full entry.
func (r *QueryLog) readIndexedEntry(tx *badger.Txn, item *badger.Item) (*core.QueryLogEntry, error) {
	var entryID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		entryID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.readEntry(tx, makeQueryLogKey(entryID))
}
