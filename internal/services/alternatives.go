package services

import (
	"fmt"
	"math"
	"sort"

	"traffic-route-service/internal/domain"
)

// AlternativeFinder enumerates up to k distinct simple paths between two
// graph nodes.
//
// The method is repeated shortest-path search with multiplicative edge
// penalization: after each accepted path, the weights of its edges (both
// directions) are multiplied by PenaltyFactor so the next search is pushed
// onto different roads. Returning the same shortest path k times is never
// acceptable, so duplicate node sequences are rejected and only further
// penalized. Everything operates on a weight copy; the graph itself is
// never modified.
type AlternativeFinder struct {
	PenaltyFactor float64
}

// Attempts per requested path before giving up on finding more diversity.
const attemptsPerPath = 4

func NewAlternativeFinder(penaltyFactor float64) *AlternativeFinder {
	return &AlternativeFinder{PenaltyFactor: penaltyFactor}
}

// FindAlternatives returns up to k candidates ordered by increasing true
// length, deterministically: same graph, endpoints, and k always produce the
// same candidate set in the same order.
//
// start == end yields a single zero-length trivial path. No connectivity
// between the endpoints fails with ErrNoPathFound; fewer than k distinct
// paths is not an error as long as there is at least one.
func (f *AlternativeFinder) FindAlternatives(g *domain.RoadGraph, start, end, k int) ([]domain.PathCandidate, error) {
	if k < 1 {
		return nil, fmt.Errorf("find alternatives: k must be at least 1, got %d", k)
	}
	if start < 0 || start >= g.NodeCount() || end < 0 || end >= g.NodeCount() {
		return nil, fmt.Errorf("find alternatives: node out of range (start=%d end=%d nodes=%d)", start, end, g.NodeCount())
	}

	if start == end {
		return []domain.PathCandidate{{
			Index:         0,
			Nodes:         []int{start},
			LengthDegrees: 0,
			LengthKm:      0,
			Segments:      0,
		}}, nil
	}

	penalty := f.PenaltyFactor
	if penalty <= 1 {
		penalty = 2.0
	}

	weights := make([]float64, g.EdgeCount())
	for _, e := range g.Edges {
		weights[e.ID] = e.Length
	}

	type found struct {
		nodes  []int
		length float64
		order  int
	}

	accepted := []found{}
	seen := map[string]struct{}{}

	for attempt := 0; attempt < k*attemptsPerPath && len(accepted) < k; attempt++ {
		nodes, _, ok := shortestPath(g, weights, start, end)
		if !ok {
			if len(accepted) == 0 {
				return nil, fmt.Errorf("find alternatives: node %d to node %d: %w", start, end, domain.ErrNoPathFound)
			}
			break
		}

		key := pathKey(nodes)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			length, err := g.PathLength(nodes)
			if err != nil {
				return nil, fmt.Errorf("find alternatives: %w", err)
			}
			accepted = append(accepted, found{nodes: nodes, length: length, order: len(accepted)})
		}

		// Penalize the path's edges either way so a repeated result still
		// drives the next search elsewhere.
		for i := 0; i+1 < len(nodes); i++ {
			for _, ei := range g.OutEdges(nodes[i]) {
				if g.Edges[ei].To == nodes[i+1] {
					weights[ei] *= penalty
				}
			}
			for _, ei := range g.OutEdges(nodes[i+1]) {
				if g.Edges[ei].To == nodes[i] {
					weights[ei] *= penalty
				}
			}
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].length != accepted[j].length {
			return accepted[i].length < accepted[j].length
		}
		return accepted[i].order < accepted[j].order
	})

	candidates := make([]domain.PathCandidate, 0, len(accepted))
	for i, p := range accepted {
		candidates = append(candidates, domain.PathCandidate{
			Index:         i,
			Nodes:         p.nodes,
			LengthDegrees: p.length,
			LengthKm:      roundTo(p.length*domain.DegreesToKm, 4),
			Segments:      len(p.nodes) - 1,
		})
	}
	return candidates, nil
}

func pathKey(nodes []int) string {
	key := make([]byte, 0, len(nodes)*4)
	for _, n := range nodes {
		key = append(key, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}
	return string(key)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
