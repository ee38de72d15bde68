package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/maildex/core"
)

// Key prefixes for different data types
const (
	queryLogPrefix     = "qlog"
	queryLogDatePrefix = "qlogd"
)

// makeQueryLogKey generates a key for a query log entry by ID.
func makeQueryLogKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queryLogPrefix, id))
}

// makeQueryLogDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeQueryLogDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := queryLogDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], encodeMicros(timestamp))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialQueryLogDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialQueryLogDateKey(timestamp time.Time) []byte {
	prefix := queryLogDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], encodeMicros(timestamp))
	return buf
}

// encodeMicros maps Unix microseconds to a uint64 whose BigEndian bytes sort
// in timestamp order. A plain cast would wrap pre-epoch timestamps (the zero
// time included) above every post-epoch key; flipping the sign bit keeps the
// whole int64 range order-preserving.
func encodeMicros(timestamp time.Time) uint64 {
	return uint64(timestamp.UnixMicro()) ^ (1 << 63)
}
