package traffic

import (
	"context"
	"sort"
	"sync"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
)

// MemoryStore is an in-memory TrafficStore used when no database is
// configured and as the deterministic double in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	samples    map[string][]domain.TrafficSample
	thresholds map[string]domain.TrafficThreshold
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		samples:    map[string][]domain.TrafficSample{},
		thresholds: map[string]domain.TrafficThreshold{},
	}
}

func (s *MemoryStore) RecordSample(_ context.Context, sample domain.TrafficSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the query order of the SQL store.
	s.samples[sample.Segment] = append([]domain.TrafficSample{sample}, s.samples[sample.Segment]...)
	return nil
}

func (s *MemoryStore) LatestSample(_ context.Context, segment string) (domain.TrafficSample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.samples[segment]
	if len(entries) == 0 {
		return domain.TrafficSample{}, false, nil
	}
	return entries[0], true, nil
}

func (s *MemoryStore) LatestSamples(ctx context.Context, segments []string) (map[string]domain.TrafficSample, error) {
	out := make(map[string]domain.TrafficSample, len(segments))
	for _, segment := range segments {
		sample, ok, err := s.LatestSample(ctx, segment)
		if err != nil {
			return nil, err
		}
		if ok {
			out[segment] = sample
		}
	}
	return out, nil
}

func (s *MemoryStore) History(_ context.Context, segment string, limit int) ([]domain.TrafficSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.samples[segment]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]domain.TrafficSample, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *MemoryStore) PutThreshold(_ context.Context, threshold domain.TrafficThreshold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds[threshold.Segment] = threshold
	return nil
}

func (s *MemoryStore) GetThreshold(_ context.Context, segment string) (domain.TrafficThreshold, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.thresholds[segment]
	return t, ok, nil
}

func (s *MemoryStore) Summary(_ context.Context) (ports.TrafficSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := ports.TrafficSummary{SegmentCount: len(s.samples)}

	speedSum := 0.0
	speedCount := 0
	bestMean := -1.0

	segments := make([]string, 0, len(s.samples))
	for segment := range s.samples {
		segments = append(segments, segment)
	}
	sort.Strings(segments)

	for _, segment := range segments {
		entries := s.samples[segment]
		summary.SampleCount += len(entries)

		vehicleSum := 0
		for _, e := range entries {
			speedSum += e.AverageSpeed
			speedCount++
			vehicleSum += e.VehicleCount
		}
		if len(entries) == 0 {
			continue
		}
		mean := float64(vehicleSum) / float64(len(entries))
		if mean > bestMean {
			bestMean = mean
			summary.MostCongestedSegment = segment
		}
	}

	if speedCount > 0 {
		summary.AverageSpeedKmh = speedSum / float64(speedCount)
	}
	return summary, nil
}

var _ ports.TrafficStore = (*MemoryStore)(nil)
