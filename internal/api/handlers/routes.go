package handlers

import (
	"net/http"
	"strconv"

	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/services"
)

type RouteHandler struct {
	Service *services.RouteService
	Metrics *obs.Metrics

	DefaultK int
	MaxK     int
}

// Analyze measures a raw coordinate polyline without snapping it.
func (h *RouteHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(req.Coordinates) < 2 {
		writeError(w, r, http.StatusBadRequest, "at least two coordinates required")
		return
	}

	coords := make([]domain.Coordinates, 0, len(req.Coordinates))
	for _, pair := range req.Coordinates {
		if len(pair) != 2 {
			writeError(w, r, http.StatusBadRequest, "coordinate must be a [lon, lat] pair")
			return
		}
		coords = append(coords, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	metrics, err := services.AnalyzeRoute(coords)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteMetricsResponse{
		LengthDegrees:       metrics.LengthDegrees,
		NumSegments:         metrics.NumSegments,
		ApproximateLengthKm: metrics.ApproximateLengthKm,
	})
}

// Alternatives returns the ranked candidate set between two endpoints given
// as start_lon/start_lat/end_lon/end_lat query parameters.
func (h *RouteHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	start, end, k, ok := h.endpointParams(w, r)
	if !ok {
		return
	}

	ranked, err := h.Service.Alternatives(r.Context(), start, end, k)
	if err != nil {
		h.observe("alternatives", "error")
		writeDomainError(w, r, err)
		return
	}

	h.observe("alternatives", "ok")
	writeJSON(w, r, http.StatusOK, dto.AlternativesResponse{Alternatives: toAlternatives(ranked)})
}

// Recommend runs the full pipeline and returns the chosen candidate with
// its justification.
func (h *RouteHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	start, end, k, ok := h.endpointParams(w, r)
	if !ok {
		return
	}

	rec, err := h.Service.RecommendRoute(r.Context(), start, end, k)
	if err != nil {
		h.observe("recommend", "error")
		writeDomainError(w, r, err)
		return
	}

	h.observe("recommend", "ok")
	writeJSON(w, r, http.StatusOK, dto.RecommendationResponse{
		RecommendedCandidateID:      rec.Chosen.Index,
		AllAlternatives:             toAlternatives(rec.Alternatives),
		RecommendationJustification: rec.Justification,
	})
}

func (h *RouteHandler) endpointParams(w http.ResponseWriter, r *http.Request) (start, end domain.Coordinates, k int, ok bool) {
	q := r.URL.Query()

	parse := func(name string) (float64, bool) {
		v, err := strconv.ParseFloat(q.Get(name), 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, name+" must be a number")
			return 0, false
		}
		return v, true
	}

	var okParam bool
	if start.Lon, okParam = parse("start_lon"); !okParam {
		return start, end, 0, false
	}
	if start.Lat, okParam = parse("start_lat"); !okParam {
		return start, end, 0, false
	}
	if end.Lon, okParam = parse("end_lon"); !okParam {
		return start, end, 0, false
	}
	if end.Lat, okParam = parse("end_lat"); !okParam {
		return start, end, 0, false
	}

	k = h.DefaultK
	if raw := q.Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "k must be a positive integer")
			return start, end, 0, false
		}
		k = parsed
	}
	if h.MaxK > 0 && k > h.MaxK {
		k = h.MaxK
	}

	return start, end, k, true
}

func (h *RouteHandler) observe(operation, outcome string) {
	if h.Metrics != nil {
		h.Metrics.AnalysisTotal.WithLabelValues(operation, outcome).Inc()
	}
}

func toAlternatives(ranked []domain.ScoredCandidate) []dto.AlternativeResponse {
	out := make([]dto.AlternativeResponse, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, dto.AlternativeResponse{
			CandidateID:      c.Index,
			LengthKm:         c.LengthKm,
			NumSegments:      c.Segments,
			SuitabilityScore: c.Score,
			Rank:             c.Rank,
		})
	}
	return out
}
