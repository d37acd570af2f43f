package services

import (
	"sync/atomic"

	"traffic-route-service/internal/domain"
)

// NetworkHolder owns the process-wide road-network reference.
//
// Uploads replace the pointer atomically (copy-on-write), so concurrent
// analysis requests observe either the old or the new graph, never a
// partially built one, and a rebuild never blocks readers. A failed upload
// leaves the previous graph in place.
type NetworkHolder struct {
	current atomic.Pointer[domain.RoadGraph]
}

func NewNetworkHolder() *NetworkHolder {
	return &NetworkHolder{}
}

// Load returns the current graph snapshot, or nil when none is loaded.
func (h *NetworkHolder) Load() *domain.RoadGraph {
	return h.current.Load()
}

// Replace swaps in a fully built graph.
func (h *NetworkHolder) Replace(g *domain.RoadGraph) {
	h.current.Store(g)
}
