package services

import (
	"fmt"

	"traffic-route-service/internal/domain"
)

// Geometric summary of a raw coordinate polyline.
type RouteMetrics struct {
	LengthDegrees       float64
	NumSegments         int
	ApproximateLengthKm float64
}

// AnalyzeRoute measures a coordinate sequence as supplied, without snapping
// it onto the network: total length in degrees, segment count, and the
// approximate kilometer conversion (rounded to 4 decimals).
func AnalyzeRoute(coords []domain.Coordinates) (RouteMetrics, error) {
	if len(coords) < 2 {
		return RouteMetrics{}, fmt.Errorf("analyze route: need at least two coordinates, got %d: %w",
			len(coords), domain.ErrInvalidNetworkFormat)
	}

	length := 0.0
	for i := 0; i+1 < len(coords); i++ {
		length += coords[i].DistanceTo(coords[i+1])
	}

	return RouteMetrics{
		LengthDegrees:       length,
		NumSegments:         len(coords) - 1,
		ApproximateLengthKm: roundTo(length*domain.DegreesToKm, 4),
	}, nil
}
