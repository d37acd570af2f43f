package repositories

import (
	"context"
	"sync"

	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
)

// MemoryDamageRepository keeps snapped damage reports in memory. Used when
// no database is configured and as the test double.
type MemoryDamageRepository struct {
	mu      sync.RWMutex
	reports []domain.DamageReport
}

func NewMemoryDamageRepository() *MemoryDamageRepository {
	return &MemoryDamageRepository{}
}

func (r *MemoryDamageRepository) SaveReports(_ context.Context, reports []domain.DamageReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Prepend so listing stays newest first, like the SQL repository.
	r.reports = append(append([]domain.DamageReport{}, reports...), r.reports...)
	return nil
}

func (r *MemoryDamageRepository) ListReports(_ context.Context, limit int) ([]domain.DamageReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reports := r.reports
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	out := make([]domain.DamageReport, len(reports))
	copy(out, reports)
	return out, nil
}

var _ ports.DamageRepository = (*MemoryDamageRepository)(nil)
