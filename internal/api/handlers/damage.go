package handlers

import (
	"net/http"
	"strconv"
	"time"

	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"

	"github.com/google/uuid"
)

type DamageHandler struct {
	Holder  *services.NetworkHolder
	Snapper *services.CoordinateSnapper
	Repo    ports.DamageRepository
}

// IngestBatch snaps a batch of damaged-point observations onto the network.
// Out-of-tolerance points are reported per item, not fatal to the batch;
// the response counts always satisfy snapped + outside = total.
func (h *DamageHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.DamageBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Points) == 0 {
		writeError(w, r, http.StatusBadRequest, "points is required")
		return
	}

	g := h.Holder.Load()
	if g == nil {
		writeDomainError(w, r, domain.ErrNetworkNotLoaded)
		return
	}

	points := make([]domain.Coordinates, 0, len(req.Points))
	for _, p := range req.Points {
		points = append(points, domain.Coordinates{Lon: p.Lon, Lat: p.Lat})
	}

	results, snapped, outside, err := h.Snapper.SnapBatch(g, points)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	now := time.Now().UTC()
	reports := []domain.DamageReport{}
	res := dto.DamageBatchResponse{
		TotalInputPoints:    len(req.Points),
		SuccessfullySnapped: snapped,
		OutsideTolerance:    outside,
		Results:             make([]dto.DamagePointResult, 0, len(results)),
	}

	for i, sr := range results {
		out := dto.DamagePointResult{Lon: sr.Point.Lon, Lat: sr.Point.Lat, Snapped: sr.Snapped, Reason: sr.Reason}
		if sr.Snapped {
			nodeID := sr.NodeID
			out.NodeID = &nodeID
			reports = append(reports, domain.DamageReport{
				ID:         uuid.NewString(),
				Point:      sr.Point,
				Severity:   req.Points[i].Severity,
				NodeID:     sr.NodeID,
				ReportedAt: now,
			})
		}
		res.Results = append(res.Results, out)
	}

	if len(reports) > 0 {
		if err := h.Repo.SaveReports(r.Context(), reports); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns recently stored damage reports.
func (h *DamageHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	reports, err := h.Repo.ListReports(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.DamageReportListResponse{Reports: make([]dto.DamageReportResponse, 0, len(reports))}
	for _, report := range reports {
		res.Reports = append(res.Reports, dto.DamageReportResponse{
			ID:         report.ID,
			Lon:        report.Point.Lon,
			Lat:        report.Point.Lat,
			Severity:   report.Severity,
			NodeID:     report.NodeID,
			ReportedAt: report.ReportedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
