package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/ports"

	"github.com/go-chi/chi/v5"
)

// Invalidator is implemented by caching traffic readers that need to drop a
// segment entry after ingestion.
type Invalidator interface {
	Invalidate(ctx context.Context, segment string)
}

type TrafficHandler struct {
	Store ports.TrafficStore
	Cache Invalidator
}

// Ingest records one traffic sample for a segment.
func (h *TrafficHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.TrafficSampleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	segment := strings.TrimSpace(req.Segment)
	if segment == "" {
		writeError(w, r, http.StatusBadRequest, "segment is required")
		return
	}
	if req.VehicleCount < 0 || req.AverageSpeed < 0 {
		writeError(w, r, http.StatusBadRequest, "vehicle_count and average_speed must be non-negative")
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	sample := domain.TrafficSample{
		Segment:         segment,
		VehicleCount:    req.VehicleCount,
		AverageSpeed:    req.AverageSpeed,
		CongestionState: req.CongestionState,
		RecordedAt:      recordedAt,
	}

	if err := h.Store.RecordSample(r.Context(), sample); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if h.Cache != nil {
		h.Cache.Invalidate(r.Context(), segment)
	}

	writeJSON(w, r, http.StatusCreated, toSampleResponse(sample))
}

// Live returns the latest sample for a segment.
func (h *TrafficHandler) Live(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")

	sample, ok, err := h.Store.LatestSample(r.Context(), segment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no live data for this segment")
		return
	}
	writeJSON(w, r, http.StatusOK, toSampleResponse(sample))
}

// History returns recent samples for a segment, newest first.
func (h *TrafficHandler) History(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.Store.History(r.Context(), segment, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.TrafficHistoryResponse{
		Segment: segment,
		Count:   len(entries),
		Entries: make([]dto.TrafficSampleResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, toSampleResponse(e))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// PutThreshold configures per-segment traffic limits.
func (h *TrafficHandler) PutThreshold(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")

	var req dto.ThresholdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.VehicleCountLimit == nil && req.DensityLimit == nil {
		writeError(w, r, http.StatusBadRequest, "at least one limit is required")
		return
	}

	threshold := domain.TrafficThreshold{
		Segment:           segment,
		VehicleCountLimit: req.VehicleCountLimit,
		DensityLimit:      req.DensityLimit,
	}
	if err := h.Store.PutThreshold(r.Context(), threshold); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toThresholdResponse(threshold))
}

// GetThreshold returns the configured limits for a segment.
func (h *TrafficHandler) GetThreshold(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")

	threshold, ok, err := h.Store.GetThreshold(r.Context(), segment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no threshold configured for this segment")
		return
	}
	writeJSON(w, r, http.StatusOK, toThresholdResponse(threshold))
}

// Status compares the latest sample against the configured threshold.
func (h *TrafficHandler) Status(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")

	sample, hasSample, err := h.Store.LatestSample(r.Context(), segment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	threshold, configured, err := h.Store.GetThreshold(r.Context(), segment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.SegmentStatusResponse{
		Segment:    segment,
		Reasons:    []string{},
		HasSample:  hasSample,
		Configured: configured,
	}
	if hasSample {
		s := toSampleResponse(sample)
		res.Latest = &s
	}
	if configured {
		t := toThresholdResponse(threshold)
		res.Threshold = &t
	}

	if hasSample && configured {
		if threshold.VehicleCountLimit != nil && sample.VehicleCount > *threshold.VehicleCountLimit {
			res.Exceeded = true
			res.Reasons = append(res.Reasons, "vehicle count over limit")
		}
		if threshold.DensityLimit != nil && sample.AverageSpeed > 0 &&
			float64(sample.VehicleCount)/sample.AverageSpeed > *threshold.DensityLimit {
			res.Exceeded = true
			res.Reasons = append(res.Reasons, "density over limit")
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toSampleResponse(s domain.TrafficSample) dto.TrafficSampleResponse {
	return dto.TrafficSampleResponse{
		Segment:         s.Segment,
		VehicleCount:    s.VehicleCount,
		AverageSpeed:    s.AverageSpeed,
		CongestionState: s.CongestionState,
		RecordedAt:      s.RecordedAt,
	}
}

func toThresholdResponse(t domain.TrafficThreshold) dto.ThresholdResponse {
	return dto.ThresholdResponse{
		Segment:           t.Segment,
		VehicleCountLimit: t.VehicleCountLimit,
		DensityLimit:      t.DensityLimit,
	}
}
