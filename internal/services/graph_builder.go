package services

import (
	"fmt"
	"math"
	"sort"

	"traffic-route-service/internal/domain"

	"github.com/google/uuid"
)

// One named line geometry from an uploaded road-network description.
type NetworkFeature struct {
	Name        string
	Coordinates []domain.Coordinates
	Capacity    float64
	Roughness   float64
}

// GraphBuilder turns an uploaded feature collection into an immutable
// RoadGraph snapshot.
//
// Vertices are deduplicated by coordinate within DedupeEpsilon degrees, so
// features that share an intersection point produce a single connected node.
// Each consecutive vertex pair becomes one undirected road segment (two
// directed arcs), weighted by Euclidean degree-space distance.
type GraphBuilder struct {
	DedupeEpsilon float64
	MaxNodes      int
	MaxEdges      int
}

func NewGraphBuilder(dedupeEpsilon float64, maxNodes, maxEdges int) *GraphBuilder {
	return &GraphBuilder{DedupeEpsilon: dedupeEpsilon, MaxNodes: maxNodes, MaxEdges: maxEdges}
}

type coordKey struct {
	lon int64
	lat int64
}

// Build validates the feature collection and assembles the graph.
// The returned graph is complete before it is returned; callers swap it into
// the shared holder so readers never observe a half-built network.
func (b *GraphBuilder) Build(features []NetworkFeature) (*domain.RoadGraph, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("build graph: no features: %w", domain.ErrInvalidNetworkFormat)
	}

	eps := b.DedupeEpsilon
	if eps <= 0 {
		eps = 1e-6
	}

	nodes := []domain.Node{}
	byKey := map[coordKey]int{}

	resolve := func(c domain.Coordinates) int {
		key := coordKey{
			lon: int64(math.Round(c.Lon / eps)),
			lat: int64(math.Round(c.Lat / eps)),
		}
		if id, ok := byKey[key]; ok {
			return id
		}
		id := len(nodes)
		nodes = append(nodes, domain.Node{ID: id, Position: c})
		byKey[key] = id
		return id
	}

	edges := []domain.Edge{}
	seenArc := map[[2]int]struct{}{}

	addArc := func(from, to int, length float64, f NetworkFeature) {
		arc := [2]int{from, to}
		if _, ok := seenArc[arc]; ok {
			return
		}
		seenArc[arc] = struct{}{}
		edges = append(edges, domain.Edge{
			ID:        len(edges),
			From:      from,
			To:        to,
			Length:    length,
			Segment:   f.Name,
			Capacity:  f.Capacity,
			Roughness: f.Roughness,
		})
	}

	for i, f := range features {
		if len(f.Coordinates) < 2 {
			return nil, fmt.Errorf("build graph: feature %d (%q) has %d vertices, need at least 2: %w",
				i, f.Name, len(f.Coordinates), domain.ErrInvalidNetworkFormat)
		}
		if f.Roughness < 0 || f.Roughness > 1 {
			return nil, fmt.Errorf("build graph: feature %d (%q) roughness %.3f outside [0,1]: %w",
				i, f.Name, f.Roughness, domain.ErrInvalidNetworkFormat)
		}

		for _, c := range f.Coordinates {
			if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
				return nil, fmt.Errorf("build graph: feature %d (%q) has a non-numeric coordinate: %w",
					i, f.Name, domain.ErrInvalidNetworkFormat)
			}
		}

		prev := resolve(f.Coordinates[0])
		for _, c := range f.Coordinates[1:] {
			cur := resolve(c)
			if cur == prev {
				// Consecutive vertices collapsed into one node; nothing to connect.
				continue
			}
			length := nodes[prev].Position.DistanceTo(nodes[cur].Position)
			addArc(prev, cur, length, f)
			addArc(cur, prev, length, f)
			prev = cur
		}
	}

	if b.MaxNodes > 0 && len(nodes) > b.MaxNodes {
		return nil, fmt.Errorf("build graph: %d nodes exceeds limit %d: %w",
			len(nodes), b.MaxNodes, domain.ErrInvalidNetworkFormat)
	}
	if b.MaxEdges > 0 && len(edges) > b.MaxEdges {
		return nil, fmt.Errorf("build graph: %d edges exceeds limit %d: %w",
			len(edges), b.MaxEdges, domain.ErrInvalidNetworkFormat)
	}

	adjacency := make([][]int, len(nodes))
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.ID)
	}
	// Fixed neighbor order keeps every traversal over the graph deterministic.
	for n := range adjacency {
		sort.Slice(adjacency[n], func(i, j int) bool {
			a, b := edges[adjacency[n][i]], edges[adjacency[n][j]]
			if a.To != b.To {
				return a.To < b.To
			}
			return a.ID < b.ID
		})
	}

	return domain.NewRoadGraph(uuid.NewString(), nodes, edges, adjacency), nil
}
