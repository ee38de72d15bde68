package search

import "github.com/poiesic/maildex/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterIndexBuild(size int)
	AfterQueryTokenize(tokens []string)
	DocumentScored(documentID string, score float64)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) AfterIndexBuild(_ int)              {}
func (n *noopMonitor) AfterQueryTokenize(_ []string)      {}
func (n *noopMonitor) DocumentScored(_ string, _ float64) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)      {}
