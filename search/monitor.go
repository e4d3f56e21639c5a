package search

import (
	"github.com/acadsearch/acadsearch/core"
)

// SearchMonitor provides hooks to observe the self-query process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterFilterExtraction(filters []core.Filter)
	AfterQueryCleaning(residual string)
	AfterVectorSearch(ids []string)
	FilteredOut(id string)
	Degraded(err error)
	Finish(result *core.SelfQueryResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterFilterExtraction(_ []core.Filter) {}
func (n *noopMonitor) AfterQueryCleaning(_ string)           {}
func (n *noopMonitor) AfterVectorSearch(_ []string)          {}
func (n *noopMonitor) FilteredOut(_ string)                  {}
func (n *noopMonitor) Degraded(_ error)                      {}
func (n *noopMonitor) Finish(_ *core.SelfQueryResult)        {}
