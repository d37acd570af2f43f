package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"traffic-route-service/internal/domain"
)

type failingTrafficReader struct{}

func (failingTrafficReader) LatestSample(context.Context, string) (domain.TrafficSample, bool, error) {
	return domain.TrafficSample{}, false, errors.New("traffic source down")
}

func (failingTrafficReader) LatestSamples(context.Context, []string) (map[string]domain.TrafficSample, error) {
	return nil, errors.New("traffic source down")
}

func (failingTrafficReader) History(context.Context, string, int) ([]domain.TrafficSample, error) {
	return nil, errors.New("traffic source down")
}

func newTestRouteService(t *testing.T) *RouteService {
	t.Helper()
	holder := NewNetworkHolder()
	holder.Replace(buildTestGraph(t, diamondFeatures()))

	scorer, err := NewRouteScorer(Weights{Length: 0.5, Traffic: 0.3, Condition: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &RouteService{
		Networks:          holder,
		Snapper:           NewCoordinateSnapper(0.05),
		Finder:            NewAlternativeFinder(2.0),
		Scorer:            scorer,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		FreeFlowSpeedKmh:  80,
		ReferenceCapacity: 100,
	}
}

func TestAlternativesPipeline(t *testing.T) {
	svc := newTestRouteService(t)

	ranked, err := svc.Alternatives(context.Background(),
		domain.Coordinates{Lon: 0.01, Lat: 0.01},
		domain.Coordinates{Lon: 0.99, Lat: 0.99},
		3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked candidates, got %d", len(ranked))
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("position %d: expected rank %d, got %d", i, i+1, r.Rank)
		}
	}
	// All capacities and roughness equal, so the shortest route must win.
	if ranked[0].Index != 0 {
		t.Fatalf("expected the shortest candidate at rank 1, got index %d", ranked[0].Index)
	}
}

func TestAlternativesWithoutNetwork(t *testing.T) {
	svc := newTestRouteService(t)
	svc.Networks = NewNetworkHolder()

	_, err := svc.Alternatives(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)
	if !errors.Is(err, domain.ErrNetworkNotLoaded) {
		t.Fatalf("expected ErrNetworkNotLoaded, got %v", err)
	}
}

func TestAlternativesOutsideTolerance(t *testing.T) {
	svc := newTestRouteService(t)

	_, err := svc.Alternatives(context.Background(),
		domain.Coordinates{Lon: 50, Lat: 50},
		domain.Coordinates{Lon: 1, Lat: 1},
		3)
	if !errors.Is(err, domain.ErrOutsideTolerance) {
		t.Fatalf("expected ErrOutsideTolerance, got %v", err)
	}
}

func TestAlternativesDegradesWhenTrafficUnavailable(t *testing.T) {
	svc := newTestRouteService(t)
	svc.Traffic = failingTrafficReader{}

	ranked, err := svc.Alternatives(context.Background(),
		domain.Coordinates{Lon: 0, Lat: 0},
		domain.Coordinates{Lon: 1, Lat: 1},
		3)
	if err != nil {
		t.Fatalf("expected neutral-signal scoring, got error: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(ranked))
	}
}

func TestRecommendRoutePipeline(t *testing.T) {
	svc := newTestRouteService(t)

	rec, err := svc.RecommendRoute(context.Background(),
		domain.Coordinates{Lon: 0, Lat: 0},
		domain.Coordinates{Lon: 1, Lat: 1},
		3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Chosen.Rank != 1 {
		t.Fatalf("expected chosen candidate at rank 1, got %d", rec.Chosen.Rank)
	}
	if rec.Justification == "" {
		t.Fatal("expected a justification string")
	}
	if len(rec.Alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(rec.Alternatives))
	}
}

func TestNetworkHolderReplace(t *testing.T) {
	holder := NewNetworkHolder()
	if holder.Load() != nil {
		t.Fatal("expected no graph before the first upload")
	}

	first := buildTestGraph(t, diamondFeatures())
	holder.Replace(first)
	if holder.Load() != first {
		t.Fatal("expected the loaded graph to be the replaced one")
	}

	second := buildTestGraph(t, diamondFeatures())
	holder.Replace(second)
	if got := holder.Load(); got != second {
		t.Fatalf("expected the second graph after replacement, got version %q", got.Version)
	}
	if first.Version == second.Version {
		t.Fatal("expected each build to carry a fresh version")
	}
}
