package dto

type AnalyzeRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type RouteMetricsResponse struct {
	LengthDegrees       float64 `json:"length_degrees"`
	NumSegments         int     `json:"num_segments"`
	ApproximateLengthKm float64 `json:"approximate_length_km"`
}

// Canonical ranked-alternative shape. One field set at the boundary; naming
// drift between handlers is not allowed to reach the core.
type AlternativeResponse struct {
	CandidateID      int     `json:"candidate_id"`
	LengthKm         float64 `json:"length_km"`
	NumSegments      int     `json:"num_segments"`
	SuitabilityScore float64 `json:"suitability_score"`
	Rank             int     `json:"rank"`
}

type AlternativesResponse struct {
	Alternatives []AlternativeResponse `json:"alternatives"`
}

type RecommendationResponse struct {
	RecommendedCandidateID      int                   `json:"recommended_candidate_id"`
	AllAlternatives             []AlternativeResponse `json:"all_alternatives"`
	RecommendationJustification string                `json:"recommendation_justification"`
}
