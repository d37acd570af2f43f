package services

import (
	"container/heap"

	"traffic-route-service/internal/domain"
)

type pqItem struct {
	node     int
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

// Equal priorities fall back to node ID so pop order is stable across runs.
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].node < pq[j].node
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(*pqItem)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// shortestPath runs Dijkstra from start to end using the supplied per-edge
// weights (indexed by edge ID), which lets the alternative finder penalize
// edges without touching the immutable graph. Returns the node sequence, the
// weighted cost, and whether any path exists.
func shortestPath(g *domain.RoadGraph, weights []float64, start, end int) ([]int, float64, bool) {
	const unvisited = -1

	dist := make([]float64, g.NodeCount())
	prev := make([]int, g.NodeCount())
	done := make([]bool, g.NodeCount())
	for i := range dist {
		dist[i] = -1
		prev[i] = unvisited
	}
	dist[start] = 0

	pq := &priorityQueue{{node: start, priority: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		u := item.node
		if done[u] {
			continue
		}
		done[u] = true
		if u == end {
			break
		}

		for _, ei := range g.OutEdges(u) {
			e := g.Edges[ei]
			w := weights[e.ID]
			next := dist[u] + w
			if dist[e.To] < 0 || next < dist[e.To] {
				dist[e.To] = next
				prev[e.To] = u
				heap.Push(pq, &pqItem{node: e.To, priority: next})
			}
		}
	}

	if !done[end] {
		return nil, 0, false
	}

	path := []int{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[end], true
}
