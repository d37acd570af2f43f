package domain

import "fmt"

// A unique point in the road graph, identified and positioned by coordinate.
type Node struct {
	ID       int
	Position Coordinates
}

// A weighted connection between two nodes representing a traversable road
// segment. Length is Euclidean degree-space distance between the endpoints.
type Edge struct {
	ID        int
	From      int
	To        int
	Length    float64
	Segment   string
	Capacity  float64
	Roughness float64
}

// RoadGraph is an immutable snapshot of the uploaded road network.
//
// It is built once per upload and replaced wholesale on re-upload (see
// services.NetworkHolder); nothing mutates a graph after construction, so
// concurrent readers need no locking.
type RoadGraph struct {
	Version string
	Nodes   []Node
	Edges   []Edge

	// adjacency[n] holds edge indices leaving node n, sorted by target node
	// ID so traversal order never depends on map iteration.
	adjacency [][]int
}

// NewRoadGraph assembles the immutable snapshot. The adjacency slice must
// already be ordered deterministically; the graph builder owns that.
func NewRoadGraph(version string, nodes []Node, edges []Edge, adjacency [][]int) *RoadGraph {
	return &RoadGraph{Version: version, Nodes: nodes, Edges: edges, adjacency: adjacency}
}

func (g *RoadGraph) NodeCount() int { return len(g.Nodes) }

func (g *RoadGraph) EdgeCount() int { return len(g.Edges) }

// OutEdges returns the indices into Edges of all edges leaving node id.
func (g *RoadGraph) OutEdges(id int) []int {
	if id < 0 || id >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[id]
}

// NearestNode finds the node closest to c in degree-space.
// Ties at equal distance resolve to the lowest node ID; the linear scan in
// ascending ID order guarantees that. Returns ErrOutsideTolerance when the
// closest node is farther than tolerance degrees away.
func (g *RoadGraph) NearestNode(c Coordinates, tolerance float64) (int, error) {
	if len(g.Nodes) == 0 {
		return 0, fmt.Errorf("nearest node: %w", ErrNetworkNotLoaded)
	}

	best := -1
	bestDist := 0.0
	for i := range g.Nodes {
		d := g.Nodes[i].Position.DistanceTo(c)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	if bestDist > tolerance {
		return 0, fmt.Errorf("nearest node: distance %.6f exceeds tolerance %.6f: %w", bestDist, tolerance, ErrOutsideTolerance)
	}
	return g.Nodes[best].ID, nil
}

// PathLength sums edge lengths along a node sequence. The sequence must be a
// connected path; a missing edge is a programming error surfaced as such.
func (g *RoadGraph) PathLength(nodes []int) (float64, error) {
	total := 0.0
	for i := 0; i+1 < len(nodes); i++ {
		e, err := g.edgeBetween(nodes[i], nodes[i+1])
		if err != nil {
			return 0, fmt.Errorf("path length: %w", err)
		}
		total += e.Length
	}
	return total, nil
}

// PathSegments returns the distinct segment names traversed by a node
// sequence, in first-traversal order.
func (g *RoadGraph) PathSegments(nodes []int) []string {
	seen := map[string]struct{}{}
	segments := []string{}
	for i := 0; i+1 < len(nodes); i++ {
		e, err := g.edgeBetween(nodes[i], nodes[i+1])
		if err != nil {
			continue
		}
		if _, ok := seen[e.Segment]; ok {
			continue
		}
		seen[e.Segment] = struct{}{}
		segments = append(segments, e.Segment)
	}
	return segments
}

// PathEdges returns the edges traversed by a node sequence in order.
func (g *RoadGraph) PathEdges(nodes []int) ([]Edge, error) {
	edges := make([]Edge, 0, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		e, err := g.edgeBetween(nodes[i], nodes[i+1])
		if err != nil {
			return nil, fmt.Errorf("path edges: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func (g *RoadGraph) edgeBetween(from, to int) (Edge, error) {
	for _, ei := range g.OutEdges(from) {
		if g.Edges[ei].To == to {
			return g.Edges[ei], nil
		}
	}
	return Edge{}, fmt.Errorf("no edge between node %d and node %d", from, to)
}
