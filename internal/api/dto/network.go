package dto

// One named line geometry in an uploaded road-network description.
// Coordinates are [lon, lat] pairs in degrees.
type NetworkFeature struct {
	Name        string      `json:"name"`
	Coordinates [][]float64 `json:"coordinates"`
	Capacity    float64     `json:"capacity"`
	Roughness   float64     `json:"roughness"`
}

type NetworkUploadRequest struct {
	Features []NetworkFeature `json:"features"`
}

type NetworkUploadResponse struct {
	Version  string `json:"version"`
	NumNodes int    `json:"num_nodes"`
	NumEdges int    `json:"num_edges"`
}

type NetworkStatusResponse struct {
	Loaded   bool   `json:"loaded"`
	Version  string `json:"version,omitempty"`
	NumNodes int    `json:"num_nodes"`
	NumEdges int    `json:"num_edges"`
}
