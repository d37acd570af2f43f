package services

import (
	"context"
	"fmt"
	"log/slog"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
)

// RouteService runs the full analysis pipeline for one request:
// snap endpoints, enumerate alternatives, score, rank, recommend.
// The whole pipeline is stateless per call; the only long-lived state is the
// graph snapshot read from the holder at the start of each request.
type RouteService struct {
	Networks *NetworkHolder
	Traffic  ports.TrafficReader
	Snapper  *CoordinateSnapper
	Finder   *AlternativeFinder
	Scorer   *RouteScorer
	Logger   *slog.Logger

	FreeFlowSpeedKmh  float64
	ReferenceCapacity float64
}

// Alternatives returns the ranked candidate set between two raw coordinates.
func (s *RouteService) Alternatives(ctx context.Context, start, end domain.Coordinates, k int) ([]domain.ScoredCandidate, error) {
	scored, err := s.scoredCandidates(ctx, start, end, k)
	if err != nil {
		return nil, fmt.Errorf("alternatives: %w", err)
	}
	ranked, err := Rank(scored)
	if err != nil {
		return nil, fmt.Errorf("alternatives: %w", err)
	}
	return ranked, nil
}

// RecommendRoute returns the ranked alternatives plus the chosen candidate
// and its justification.
func (s *RouteService) RecommendRoute(ctx context.Context, start, end domain.Coordinates, k int) (*domain.Recommendation, error) {
	scored, err := s.scoredCandidates(ctx, start, end, k)
	if err != nil {
		return nil, fmt.Errorf("recommend route: %w", err)
	}
	rec, err := Recommend(scored)
	if err != nil {
		return nil, fmt.Errorf("recommend route: %w", err)
	}
	return rec, nil
}

func (s *RouteService) scoredCandidates(ctx context.Context, start, end domain.Coordinates, k int) ([]domain.ScoredCandidate, error) {
	g := s.Networks.Load()
	if g == nil {
		return nil, domain.ErrNetworkNotLoaded
	}

	startNode, err := s.Snapper.Snap(g, start)
	if err != nil {
		return nil, fmt.Errorf("start point: %w", err)
	}
	endNode, err := s.Snapper.Snap(g, end)
	if err != nil {
		return nil, fmt.Errorf("end point: %w", err)
	}

	candidates, err := s.Finder.FindAlternatives(g, startNode, endNode, k)
	if err != nil {
		return nil, err
	}

	inputs := s.scoringInputs(ctx, g, candidates)

	scored, err := s.Scorer.Score(g, candidates, inputs)
	if err != nil {
		return nil, err
	}
	return scored, nil
}

// scoringInputs snapshots the traffic signal for every segment the candidate
// set touches. An unavailable traffic source degrades to unknown signals
// (scored with the neutral default) instead of failing the request.
func (s *RouteService) scoringInputs(ctx context.Context, g *domain.RoadGraph, candidates []domain.PathCandidate) domain.ScoringInputs {
	inputs := domain.ScoringInputs{
		Signals:           map[string]domain.TrafficSignal{},
		FreeFlowSpeedKmh:  s.FreeFlowSpeedKmh,
		ReferenceCapacity: s.ReferenceCapacity,
	}

	seen := map[string]struct{}{}
	segments := []string{}
	for _, c := range candidates {
		for _, name := range g.PathSegments(c.Nodes) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			segments = append(segments, name)
		}
	}
	if len(segments) == 0 || s.Traffic == nil {
		return inputs
	}

	samples, err := s.Traffic.LatestSamples(ctx, segments)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("traffic lookup failed, scoring with neutral signals", "err", err)
		}
		return inputs
	}

	for segment, sample := range samples {
		inputs.Signals[segment] = domain.TrafficSignal{Sample: sample, Known: true}
	}
	return inputs
}
