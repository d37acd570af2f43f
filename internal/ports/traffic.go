package ports

import (
	"context"

	"traffic-route-service/internal/domain"
)

// Aggregate view over the stored traffic data.
type TrafficSummary struct {
	SegmentCount         int
	SampleCount          int
	AverageSpeedKmh      float64
	MostCongestedSegment string
}

// Port: read access to recent traffic observations.
// The route scorer depends on this and nothing more; a missing sample is a
// normal outcome, not an error.
type TrafficReader interface {
	// Return the most recent sample for one segment. The bool reports
	// whether a sample exists.
	LatestSample(ctx context.Context, segment string) (domain.TrafficSample, bool, error)

	// Return the most recent sample per requested segment. Segments without
	// data are simply absent from the result.
	LatestSamples(ctx context.Context, segments []string) (map[string]domain.TrafficSample, error)

	// Return up to limit samples for a segment, newest first.
	History(ctx context.Context, segment string, limit int) ([]domain.TrafficSample, error)
}

// Port: full traffic persistence boundary used by the ingestion and
// threshold endpoints.
type TrafficStore interface {
	TrafficReader

	RecordSample(ctx context.Context, sample domain.TrafficSample) error

	// Upsert the threshold for a segment.
	PutThreshold(ctx context.Context, threshold domain.TrafficThreshold) error

	// Return the threshold for a segment. The bool reports whether one is
	// configured.
	GetThreshold(ctx context.Context, segment string) (domain.TrafficThreshold, bool, error)

	Summary(ctx context.Context) (TrafficSummary, error)
}
