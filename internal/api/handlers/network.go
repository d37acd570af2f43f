package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"traffic-route-service/internal/api/dto"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/services"
)

type NetworkHandler struct {
	Holder  *services.NetworkHolder
	Builder *services.GraphBuilder
	Metrics *obs.Metrics
}

// Upload replaces the loaded road network wholesale. A rejected upload
// leaves the previous graph untouched; callers never observe a half-built
// network.
func (h *NetworkHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req dto.NetworkUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	features, err := toFeatures(req.Features)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	graph, err := h.Builder.Build(features)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.Holder.Replace(graph)
	if h.Metrics != nil {
		h.Metrics.NetworkNodes.Set(float64(graph.NodeCount()))
		h.Metrics.NetworkEdges.Set(float64(graph.EdgeCount()))
	}

	writeJSON(w, r, http.StatusOK, dto.NetworkUploadResponse{
		Version:  graph.Version,
		NumNodes: graph.NodeCount(),
		NumEdges: graph.EdgeCount(),
	})
}

// Status reports the loaded network's version and size.
func (h *NetworkHandler) Status(w http.ResponseWriter, r *http.Request) {
	g := h.Holder.Load()
	if g == nil {
		writeJSON(w, r, http.StatusOK, dto.NetworkStatusResponse{Loaded: false})
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NetworkStatusResponse{
		Loaded:   true,
		Version:  g.Version,
		NumNodes: g.NodeCount(),
		NumEdges: g.EdgeCount(),
	})
}

func toFeatures(in []dto.NetworkFeature) ([]services.NetworkFeature, error) {
	features := make([]services.NetworkFeature, 0, len(in))
	for i, f := range in {
		coords := make([]domain.Coordinates, 0, len(f.Coordinates))
		for _, pair := range f.Coordinates {
			if len(pair) != 2 {
				return nil, fmt.Errorf("feature %d (%q): coordinate must be a [lon, lat] pair: %w",
					i, f.Name, domain.ErrInvalidNetworkFormat)
			}
			coords = append(coords, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
		}

		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = fmt.Sprintf("segment-%d", i)
		}

		features = append(features, services.NetworkFeature{
			Name:        name,
			Coordinates: coords,
			Capacity:    f.Capacity,
			Roughness:   f.Roughness,
		})
	}
	return features, nil
}
