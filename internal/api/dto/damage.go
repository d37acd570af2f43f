package dto

import "time"

type DamagePoint struct {
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Severity string  `json:"severity"`
}

type DamageBatchRequest struct {
	Points []DamagePoint `json:"points"`
}

type DamagePointResult struct {
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	Snapped bool    `json:"snapped"`
	NodeID  *int    `json:"node_id,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

type DamageBatchResponse struct {
	TotalInputPoints    int                 `json:"total_input_points"`
	SuccessfullySnapped int                 `json:"successfully_snapped"`
	OutsideTolerance    int                 `json:"outside_tolerance"`
	Results             []DamagePointResult `json:"results"`
}

type DamageReportResponse struct {
	ID         string    `json:"id"`
	Lon        float64   `json:"lon"`
	Lat        float64   `json:"lat"`
	Severity   string    `json:"severity"`
	NodeID     int       `json:"node_id"`
	ReportedAt time.Time `json:"reported_at"`
}

type DamageReportListResponse struct {
	Reports []DamageReportResponse `json:"reports"`
}
