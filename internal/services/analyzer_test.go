package services

import (
	"errors"
	"math"
	"testing"

	"traffic-route-service/internal/domain"
)

func TestAnalyzeRouteTwoPoints(t *testing.T) {
	metrics, err := AnalyzeRoute([]domain.Coordinates{
		{Lon: 77.209, Lat: 28.6139},
		{Lon: 77.220, Lat: 28.6200},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.NumSegments != 1 {
		t.Fatalf("expected 1 segment, got %d", metrics.NumSegments)
	}
	wantDegrees := math.Sqrt(0.011*0.011 + 0.0061*0.0061)
	if math.Abs(metrics.LengthDegrees-wantDegrees) > 1e-12 {
		t.Fatalf("expected length %v degrees, got %v", wantDegrees, metrics.LengthDegrees)
	}
	wantKm := math.Round(wantDegrees*domain.DegreesToKm*1e4) / 1e4
	if metrics.ApproximateLengthKm != wantKm {
		t.Fatalf("expected %v km, got %v", wantKm, metrics.ApproximateLengthKm)
	}
}

func TestAnalyzeRouteThreePoints(t *testing.T) {
	metrics, err := AnalyzeRoute([]domain.Coordinates{
		{Lon: 77.2090, Lat: 28.6139},
		{Lon: 77.2110, Lat: 28.6150},
		{Lon: 77.2200, Lat: 28.6200},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metrics.NumSegments != 2 {
		t.Fatalf("expected 2 segments, got %d", metrics.NumSegments)
	}
	if metrics.ApproximateLengthKm != 1.3962 {
		t.Fatalf("expected 1.3962 km, got %v", metrics.ApproximateLengthKm)
	}
}

func TestAnalyzeRouteTooFewPoints(t *testing.T) {
	for _, coords := range [][]domain.Coordinates{nil, {{Lon: 1, Lat: 1}}} {
		if _, err := AnalyzeRoute(coords); !errors.Is(err, domain.ErrInvalidNetworkFormat) {
			t.Fatalf("expected ErrInvalidNetworkFormat for %d points, got %v", len(coords), err)
		}
	}
}
