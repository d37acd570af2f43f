package domain

import (
	"errors"
	"math"
	"testing"
)

func twoSegmentGraph() *RoadGraph {
	nodes := []Node{
		{ID: 0, Position: Coordinates{Lon: 0, Lat: 0}},
		{ID: 1, Position: Coordinates{Lon: 1, Lat: 0}},
		{ID: 2, Position: Coordinates{Lon: 2, Lat: 0}},
	}
	edges := []Edge{
		{ID: 0, From: 0, To: 1, Length: 1, Segment: "west"},
		{ID: 1, From: 1, To: 0, Length: 1, Segment: "west"},
		{ID: 2, From: 1, To: 2, Length: 1, Segment: "east"},
		{ID: 3, From: 2, To: 1, Length: 1, Segment: "east"},
	}
	adjacency := [][]int{{0}, {1, 2}, {3}}
	return NewRoadGraph("test", nodes, edges, adjacency)
}

func TestDistanceTo(t *testing.T) {
	a := Coordinates{Lon: 0, Lat: 0}
	b := Coordinates{Lon: 3, Lat: 4}
	if d := a.DistanceTo(b); d != 5 {
		t.Fatalf("expected distance 5, got %v", d)
	}
	if d := b.DistanceTo(a); d != 5 {
		t.Fatalf("expected symmetric distance 5, got %v", d)
	}
}

func TestNearestNodeTieResolvesToLowestID(t *testing.T) {
	g := twoSegmentGraph()

	// (0.5, 0) is exactly 0.5 from node 0 and node 1.
	id, err := g.NearestNode(Coordinates{Lon: 0.5, Lat: 0}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected node 0 on a tie, got %d", id)
	}
}

func TestNearestNodeOutsideTolerance(t *testing.T) {
	g := twoSegmentGraph()

	_, err := g.NearestNode(Coordinates{Lon: 10, Lat: 10}, 0.5)
	if !errors.Is(err, ErrOutsideTolerance) {
		t.Fatalf("expected ErrOutsideTolerance, got %v", err)
	}
}

func TestPathLengthAndSegments(t *testing.T) {
	g := twoSegmentGraph()

	length, err := g.PathLength([]int{0, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(length-2) > 1e-12 {
		t.Fatalf("expected length 2, got %v", length)
	}

	segments := g.PathSegments([]int{0, 1, 2})
	if len(segments) != 2 || segments[0] != "west" || segments[1] != "east" {
		t.Fatalf("expected [west east], got %v", segments)
	}

	if _, err := g.PathLength([]int{0, 2}); err == nil {
		t.Fatal("expected an error for a disconnected node pair")
	}
}
