package services

import (
	"errors"
	"fmt"

	"traffic-route-service/internal/domain"
)

// CoordinateSnapper resolves raw coordinates to the nearest graph node
// within a fixed default tolerance.
type CoordinateSnapper struct {
	Tolerance float64
}

func NewCoordinateSnapper(tolerance float64) *CoordinateSnapper {
	return &CoordinateSnapper{Tolerance: tolerance}
}

// Snap returns the ID of the nearest node. A coordinate farther than the
// tolerance fails with ErrOutsideTolerance, which callers must distinguish
// from hard failures: batch operations report it per item and continue.
func (s *CoordinateSnapper) Snap(g *domain.RoadGraph, c domain.Coordinates) (int, error) {
	if g == nil || g.NodeCount() == 0 {
		return 0, fmt.Errorf("snap: %w", domain.ErrNetworkNotLoaded)
	}
	id, err := g.NearestNode(c, s.Tolerance)
	if err != nil {
		return 0, fmt.Errorf("snap (%.6f, %.6f): %w", c.Lon, c.Lat, err)
	}
	return id, nil
}

// Outcome of snapping one point in a batch.
type SnapResult struct {
	Point   domain.Coordinates
	NodeID  int
	Snapped bool
	Reason  string
}

// SnapBatch snaps every point, collecting per-item outcomes instead of
// aborting on the first out-of-tolerance point. The returned counts always
// satisfy snapped + outside = len(points).
func (s *CoordinateSnapper) SnapBatch(g *domain.RoadGraph, points []domain.Coordinates) (results []SnapResult, snapped, outside int, err error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, 0, 0, fmt.Errorf("snap batch: %w", domain.ErrNetworkNotLoaded)
	}

	results = make([]SnapResult, 0, len(points))
	for _, p := range points {
		id, snapErr := s.Snap(g, p)
		if snapErr != nil {
			if !errors.Is(snapErr, domain.ErrOutsideTolerance) {
				return nil, 0, 0, fmt.Errorf("snap batch: %w", snapErr)
			}
			outside++
			results = append(results, SnapResult{Point: p, Snapped: false, Reason: "outside tolerance"})
			continue
		}
		snapped++
		results = append(results, SnapResult{Point: p, NodeID: id, Snapped: true})
	}
	return results, snapped, outside, nil
}
