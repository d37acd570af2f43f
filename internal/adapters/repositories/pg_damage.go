package repositories

import (
	"context"
	"fmt"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGDamageRepository persists snapped damage reports in PostgreSQL via pgx.
type PGDamageRepository struct {
	db *pgxpool.Pool
}

func NewPGDamageRepository(db *pgxpool.Pool) *PGDamageRepository {
	return &PGDamageRepository{db: db}
}

const damageSchemaSQL = `
CREATE TABLE IF NOT EXISTS damage_reports (
    id          TEXT PRIMARY KEY,
    lon         DOUBLE PRECISION NOT NULL,
    lat         DOUBLE PRECISION NOT NULL,
    severity    TEXT NOT NULL DEFAULT '',
    node_id     INTEGER NOT NULL,
    reported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_damage_reports_reported_at
    ON damage_reports(reported_at DESC);
`

// CreateSchema creates the damage_reports table if it doesn't exist.
func (r *PGDamageRepository) CreateSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, damageSchemaSQL); err != nil {
		return fmt.Errorf("damage repository: create schema: %w", err)
	}
	return nil
}

func (r *PGDamageRepository) SaveReports(ctx context.Context, reports []domain.DamageReport) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("damage repository: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, report := range reports {
		_, err := tx.Exec(ctx, `
		INSERT INTO damage_reports (id, lon, lat, severity, node_id, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
			report.ID, report.Point.Lon, report.Point.Lat, report.Severity, report.NodeID, report.ReportedAt,
		)
		if err != nil {
			return fmt.Errorf("damage repository: insert report %s: %w", report.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("damage repository: commit: %w", err)
	}
	return nil
}

func (r *PGDamageRepository) ListReports(ctx context.Context, limit int) ([]domain.DamageReport, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
	SELECT id, lon, lat, severity, node_id, reported_at
	FROM damage_reports
	ORDER BY reported_at DESC
	LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("damage repository: list: %w", err)
	}
	defer rows.Close()

	out := []domain.DamageReport{}
	for rows.Next() {
		var report domain.DamageReport
		if err := rows.Scan(&report.ID, &report.Point.Lon, &report.Point.Lat, &report.Severity, &report.NodeID, &report.ReportedAt); err != nil {
			return nil, fmt.Errorf("damage repository: scan: %w", err)
		}
		out = append(out, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("damage repository: rows: %w", err)
	}
	return out, nil
}

var _ ports.DamageRepository = (*PGDamageRepository)(nil)
