package services

import (
	"fmt"
	"math"

	"traffic-route-service/internal/domain"
)

// Relative contribution of each scoring factor. Must sum to 1.0.
type Weights struct {
	Length    float64
	Traffic   float64
	Condition float64
}

const weightSumTolerance = 1e-9

// Validate rejects misconfigured weights outright; they are never clamped.
func (w Weights) Validate() error {
	if w.Length < 0 || w.Traffic < 0 || w.Condition < 0 {
		return fmt.Errorf("weights must be non-negative (length=%.4f traffic=%.4f condition=%.4f): %w",
			w.Length, w.Traffic, w.Condition, domain.ErrInvalidWeightConfiguration)
	}
	sum := w.Length + w.Traffic + w.Condition
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f: %w", sum, domain.ErrInvalidWeightConfiguration)
	}
	return nil
}

// Neutral congestion assumed for edges without a traffic sample.
const neutralCongestion = 0.5

// RouteScorer computes a suitability score in [0,1] per candidate, higher is
// better. The score is a weighted combination of three normalized factors:
// candidate length relative to the shortest candidate in the set, inverse of
// aggregated congestion along the path, and inverse of aggregated
// roughness/capacity shortfall.
type RouteScorer struct {
	Weights Weights
}

func NewRouteScorer(w Weights) (*RouteScorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("new route scorer: %w", err)
	}
	return &RouteScorer{Weights: w}, nil
}

// Score returns new scored copies of the candidates; the input set is never
// mutated. Ranks are left unassigned, that is the recommender's job.
func (s *RouteScorer) Score(g *domain.RoadGraph, candidates []domain.PathCandidate, inputs domain.ScoringInputs) ([]domain.ScoredCandidate, error) {
	if len(candidates) == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	shortest := candidates[0].LengthDegrees
	for _, c := range candidates[1:] {
		if c.LengthDegrees < shortest {
			shortest = c.LengthDegrees
		}
	}

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		lengthFactor := 1.0
		if c.LengthDegrees > 0 {
			lengthFactor = shortest / c.LengthDegrees
		}

		edges, err := g.PathEdges(c.Nodes)
		if err != nil {
			return nil, fmt.Errorf("score: candidate %d: %w", c.Index, err)
		}

		trafficFactor := 1.0 - aggregateCongestion(edges, inputs)
		conditionFactor := 1.0 - aggregateConditionPenalty(edges, inputs)

		score := s.Weights.Length*lengthFactor +
			s.Weights.Traffic*trafficFactor +
			s.Weights.Condition*conditionFactor

		scored = append(scored, domain.ScoredCandidate{
			PathCandidate: c,
			Score:         clamp01(score),
		})
	}
	return scored, nil
}

// Mean per-edge congestion in [0,1]. An edge's congestion blends volume
// pressure against capacity with speed shortfall against free flow; edges
// without a traffic sample contribute the neutral mid-value instead of
// failing the request.
func aggregateCongestion(edges []domain.Edge, inputs domain.ScoringInputs) float64 {
	if len(edges) == 0 {
		return 0
	}

	total := 0.0
	for _, e := range edges {
		signal, ok := inputs.Signals[e.Segment]
		if !ok || !signal.Known {
			total += neutralCongestion
			continue
		}

		capacity := e.Capacity
		if capacity <= 0 {
			capacity = inputs.ReferenceCapacity
		}

		volumeFactor := 0.0
		if capacity > 0 {
			volumeFactor = math.Min(float64(signal.Sample.VehicleCount)/capacity, 1.0)
		}

		speedFactor := 0.0
		if inputs.FreeFlowSpeedKmh > 0 {
			speedFactor = 1.0 - math.Min(signal.Sample.AverageSpeed/inputs.FreeFlowSpeedKmh, 1.0)
		}

		total += 0.6*volumeFactor + 0.4*speedFactor
	}
	return total / float64(len(edges))
}

// Mean per-edge condition penalty in [0,1], combining surface roughness with
// base-capacity shortfall against the reference capacity.
func aggregateConditionPenalty(edges []domain.Edge, inputs domain.ScoringInputs) float64 {
	if len(edges) == 0 {
		return 0
	}

	total := 0.0
	for _, e := range edges {
		shortfall := 0.0
		if inputs.ReferenceCapacity > 0 && e.Capacity > 0 && e.Capacity < inputs.ReferenceCapacity {
			shortfall = (inputs.ReferenceCapacity - e.Capacity) / inputs.ReferenceCapacity
		}
		total += 0.5*clamp01(e.Roughness) + 0.5*shortfall
	}
	return total / float64(len(edges))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
