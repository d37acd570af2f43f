package services

import (
	"errors"
	"testing"

	"traffic-route-service/internal/domain"
)

func TestSnapWithinTolerance(t *testing.T) {
	g := buildTestGraph(t, diamondFeatures())
	snapper := NewCoordinateSnapper(0.05)

	id, err := snapper.Snap(g, domain.Coordinates{Lon: 0.01, Lat: -0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected node 0, got %d", id)
	}
}

func TestSnapOutsideTolerance(t *testing.T) {
	g := buildTestGraph(t, diamondFeatures())
	snapper := NewCoordinateSnapper(0.05)

	_, err := snapper.Snap(g, domain.Coordinates{Lon: 10, Lat: 10})
	if !errors.Is(err, domain.ErrOutsideTolerance) {
		t.Fatalf("expected ErrOutsideTolerance, got %v", err)
	}
}

func TestSnapTieGoesToLowestNodeID(t *testing.T) {
	g := buildTestGraph(t, []NetworkFeature{
		{Name: "main", Coordinates: []domain.Coordinates{{Lon: 0, Lat: 0}, {Lon: 2, Lat: 0}}},
	})
	snapper := NewCoordinateSnapper(1.5)

	// (1,0) is exactly 1.0 from both endpoints.
	id, err := snapper.Snap(g, domain.Coordinates{Lon: 1, Lat: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("expected tie to resolve to node 0, got %d", id)
	}
}

func TestSnapWithoutNetwork(t *testing.T) {
	snapper := NewCoordinateSnapper(0.05)

	if _, err := snapper.Snap(nil, domain.Coordinates{}); !errors.Is(err, domain.ErrNetworkNotLoaded) {
		t.Fatalf("expected ErrNetworkNotLoaded, got %v", err)
	}
	if _, _, _, err := snapper.SnapBatch(nil, nil); !errors.Is(err, domain.ErrNetworkNotLoaded) {
		t.Fatalf("expected ErrNetworkNotLoaded, got %v", err)
	}
}

func TestSnapBatchCountsAddUp(t *testing.T) {
	g := buildTestGraph(t, diamondFeatures())
	snapper := NewCoordinateSnapper(0.05)

	points := []domain.Coordinates{
		{Lon: 0.01, Lat: 0.01}, // near node 0
		{Lon: 10, Lat: 10},     // far from everything
		{Lon: 1.01, Lat: 0.99}, // near node 1
		{Lon: -5, Lat: -5},     // far again
	}

	results, snapped, outside, err := snapper.SnapBatch(g, points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapped != 2 || outside != 2 {
		t.Fatalf("expected 2 snapped and 2 outside, got %d and %d", snapped, outside)
	}
	if snapped+outside != len(points) {
		t.Fatalf("counts %d+%d do not cover %d points", snapped, outside, len(points))
	}
	if len(results) != len(points) {
		t.Fatalf("expected %d results, got %d", len(points), len(results))
	}

	if !results[0].Snapped || results[0].NodeID != 0 {
		t.Fatalf("expected point 0 snapped to node 0, got %+v", results[0])
	}
	if results[1].Snapped || results[1].Reason != "outside tolerance" {
		t.Fatalf("expected point 1 outside tolerance, got %+v", results[1])
	}
	if !results[2].Snapped || results[2].NodeID != 1 {
		t.Fatalf("expected point 2 snapped to node 1, got %+v", results[2])
	}
}
