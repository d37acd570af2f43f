package ports

import (
	"context"

	"traffic-route-service/internal/domain"
)

// Port: a boundary for persisting snapped road-damage reports.
type DamageRepository interface {
	// Store a batch of snapped reports.
	SaveReports(ctx context.Context, reports []domain.DamageReport) error

	// Retrieve up to limit reports, newest first.
	ListReports(ctx context.Context, limit int) ([]domain.DamageReport, error)
}
