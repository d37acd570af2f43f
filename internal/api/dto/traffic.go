package dto

import "time"

type TrafficSampleRequest struct {
	Segment         string     `json:"segment"`
	VehicleCount    int        `json:"vehicle_count"`
	AverageSpeed    float64    `json:"average_speed"`
	CongestionState string     `json:"congestion_state"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

type TrafficSampleResponse struct {
	Segment         string    `json:"segment"`
	VehicleCount    int       `json:"vehicle_count"`
	AverageSpeed    float64   `json:"average_speed"`
	CongestionState string    `json:"congestion_state"`
	RecordedAt      time.Time `json:"recorded_at"`
}

type TrafficHistoryResponse struct {
	Segment string                  `json:"segment"`
	Count   int                     `json:"count"`
	Entries []TrafficSampleResponse `json:"entries"`
}

type ThresholdRequest struct {
	VehicleCountLimit *int     `json:"vehicle_count_limit"`
	DensityLimit      *float64 `json:"density_limit"`
}

type ThresholdResponse struct {
	Segment           string   `json:"segment"`
	VehicleCountLimit *int     `json:"vehicle_count_limit"`
	DensityLimit      *float64 `json:"density_limit"`
}

type SegmentStatusResponse struct {
	Segment    string                 `json:"segment"`
	Exceeded   bool                   `json:"exceeded"`
	Reasons    []string               `json:"reasons"`
	Latest     *TrafficSampleResponse `json:"latest,omitempty"`
	Threshold  *ThresholdResponse     `json:"threshold,omitempty"`
	HasSample  bool                   `json:"has_sample"`
	Configured bool                   `json:"configured"`
}

type AnalyticsSummaryResponse struct {
	SegmentCount         int     `json:"segment_count"`
	SampleCount          int     `json:"sample_count"`
	AverageSpeedKmh      float64 `json:"average_speed_kmh"`
	MostCongestedSegment string  `json:"most_congested_segment,omitempty"`
}
