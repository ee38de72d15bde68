package index

import "github.com/poiesic/maildex/core"

// Index maps document IDs to their index entries for the lifetime of a
// search session. If non-empty, every entry was built from the same snapshot
// of documents; Build never leaves a partial state behind.
type Index struct {
	entries map[string]*core.IndexEntry
}

// New creates an empty index.
func New() *Index {
	return &Index{entries: make(map[string]*core.IndexEntry)}
}

// Entry returns the index entry for the given document ID.
func (ix *Index) Entry(documentID string) (*core.IndexEntry, bool) {
	entry, ok := ix.entries[documentID]
	return entry, ok
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Invalidate discards all entries. The next lazy or explicit build
// repopulates the index from scratch.
func (ix *Index) Invalidate() {
	ix.entries = make(map[string]*core.IndexEntry)
}

// replace swaps in a freshly built entry map.
func (ix *Index) replace(entries map[string]*core.IndexEntry) {
	ix.entries = entries
}
