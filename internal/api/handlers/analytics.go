package handlers

import (
	"net/http"

	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/ports"
)

type AnalyticsHandler struct {
	Store ports.TrafficStore
}

// Summary returns aggregate statistics over the stored traffic data.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.Summary(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AnalyticsSummaryResponse{
		SegmentCount:         summary.SegmentCount,
		SampleCount:          summary.SampleCount,
		AverageSpeedKmh:      summary.AverageSpeedKmh,
		MostCongestedSegment: summary.MostCongestedSegment,
	})
}
