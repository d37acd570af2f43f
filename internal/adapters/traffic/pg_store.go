package traffic

import (
	"context"
	"errors"
	"fmt"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements ports.TrafficStore on PostgreSQL via pgx.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const trafficSchemaSQL = `
CREATE TABLE IF NOT EXISTS traffic_samples (
    id               BIGSERIAL PRIMARY KEY,
    segment          TEXT NOT NULL,
    vehicle_count    INTEGER NOT NULL DEFAULT 0,
    average_speed    DOUBLE PRECISION NOT NULL DEFAULT 0,
    congestion_state TEXT NOT NULL DEFAULT '',
    recorded_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS traffic_thresholds (
    segment             TEXT PRIMARY KEY,
    vehicle_count_limit INTEGER,
    density_limit       DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_traffic_samples_segment_recorded
    ON traffic_samples(segment, recorded_at DESC);
`

// CreateSchema creates the traffic tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, trafficSchemaSQL); err != nil {
		return fmt.Errorf("traffic store: create schema: %w", err)
	}
	return nil
}

func (s *PGStore) RecordSample(ctx context.Context, sample domain.TrafficSample) error {
	_, err := s.db.Exec(ctx, `
	INSERT INTO traffic_samples (segment, vehicle_count, average_speed, congestion_state, recorded_at)
	VALUES ($1, $2, $3, $4, $5)`,
		sample.Segment, sample.VehicleCount, sample.AverageSpeed, sample.CongestionState, sample.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("traffic store: insert sample for %q: %w", sample.Segment, err)
	}
	return nil
}

func (s *PGStore) LatestSample(ctx context.Context, segment string) (domain.TrafficSample, bool, error) {
	var sample domain.TrafficSample
	err := s.db.QueryRow(ctx, `
	SELECT segment, vehicle_count, average_speed, congestion_state, recorded_at
	FROM traffic_samples
	WHERE segment = $1
	ORDER BY recorded_at DESC
	LIMIT 1`, segment,
	).Scan(&sample.Segment, &sample.VehicleCount, &sample.AverageSpeed, &sample.CongestionState, &sample.RecordedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrafficSample{}, false, nil
		}
		return domain.TrafficSample{}, false, fmt.Errorf("traffic store: latest sample for %q: %w", segment, err)
	}
	return sample, true, nil
}

func (s *PGStore) LatestSamples(ctx context.Context, segments []string) (map[string]domain.TrafficSample, error) {
	if len(segments) == 0 {
		return map[string]domain.TrafficSample{}, nil
	}

	rows, err := s.db.Query(ctx, `
	SELECT DISTINCT ON (segment)
	       segment, vehicle_count, average_speed, congestion_state, recorded_at
	FROM traffic_samples
	WHERE segment = ANY($1)
	ORDER BY segment, recorded_at DESC`, segments,
	)
	if err != nil {
		return nil, fmt.Errorf("traffic store: latest samples: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.TrafficSample, len(segments))
	for rows.Next() {
		var sample domain.TrafficSample
		if err := rows.Scan(&sample.Segment, &sample.VehicleCount, &sample.AverageSpeed, &sample.CongestionState, &sample.RecordedAt); err != nil {
			return nil, fmt.Errorf("traffic store: scan latest samples: %w", err)
		}
		out[sample.Segment] = sample
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("traffic store: latest samples rows: %w", err)
	}
	return out, nil
}

func (s *PGStore) History(ctx context.Context, segment string, limit int) ([]domain.TrafficSample, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(ctx, `
	SELECT segment, vehicle_count, average_speed, congestion_state, recorded_at
	FROM traffic_samples
	WHERE segment = $1
	ORDER BY recorded_at DESC
	LIMIT $2`, segment, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("traffic store: history for %q: %w", segment, err)
	}
	defer rows.Close()

	out := []domain.TrafficSample{}
	for rows.Next() {
		var sample domain.TrafficSample
		if err := rows.Scan(&sample.Segment, &sample.VehicleCount, &sample.AverageSpeed, &sample.CongestionState, &sample.RecordedAt); err != nil {
			return nil, fmt.Errorf("traffic store: scan history: %w", err)
		}
		out = append(out, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("traffic store: history rows: %w", err)
	}
	return out, nil
}

func (s *PGStore) PutThreshold(ctx context.Context, threshold domain.TrafficThreshold) error {
	_, err := s.db.Exec(ctx, `
	INSERT INTO traffic_thresholds (segment, vehicle_count_limit, density_limit)
	VALUES ($1, $2, $3)
	ON CONFLICT (segment) DO UPDATE
	SET vehicle_count_limit = EXCLUDED.vehicle_count_limit,
	    density_limit = EXCLUDED.density_limit`,
		threshold.Segment, threshold.VehicleCountLimit, threshold.DensityLimit,
	)
	if err != nil {
		return fmt.Errorf("traffic store: upsert threshold for %q: %w", threshold.Segment, err)
	}
	return nil
}

func (s *PGStore) GetThreshold(ctx context.Context, segment string) (domain.TrafficThreshold, bool, error) {
	threshold := domain.TrafficThreshold{Segment: segment}
	err := s.db.QueryRow(ctx, `
	SELECT vehicle_count_limit, density_limit
	FROM traffic_thresholds
	WHERE segment = $1`, segment,
	).Scan(&threshold.VehicleCountLimit, &threshold.DensityLimit)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrafficThreshold{}, false, nil
		}
		return domain.TrafficThreshold{}, false, fmt.Errorf("traffic store: get threshold for %q: %w", segment, err)
	}
	return threshold, true, nil
}

func (s *PGStore) Summary(ctx context.Context) (ports.TrafficSummary, error) {
	var summary ports.TrafficSummary

	err := s.db.QueryRow(ctx, `
	SELECT COUNT(DISTINCT segment), COUNT(*), COALESCE(AVG(average_speed), 0)
	FROM traffic_samples`,
	).Scan(&summary.SegmentCount, &summary.SampleCount, &summary.AverageSpeedKmh)
	if err != nil {
		return ports.TrafficSummary{}, fmt.Errorf("traffic store: summary totals: %w", err)
	}

	err = s.db.QueryRow(ctx, `
	SELECT segment
	FROM traffic_samples
	GROUP BY segment
	ORDER BY AVG(vehicle_count) DESC, segment ASC
	LIMIT 1`,
	).Scan(&summary.MostCongestedSegment)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return ports.TrafficSummary{}, fmt.Errorf("traffic store: summary most congested: %w", err)
	}

	return summary, nil
}

var _ ports.TrafficStore = (*PGStore)(nil)
