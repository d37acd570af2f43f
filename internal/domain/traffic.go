package domain

import "time"

// A single traffic observation for a named road segment.
type TrafficSample struct {
	Segment         string
	VehicleCount    int
	AverageSpeed    float64
	CongestionState string
	RecordedAt      time.Time
}

// TrafficSignal is an explicit present-or-unknown wrapper around a sample.
// Scoring treats unknown signals with a documented neutral default instead
// of relying on zero values.
type TrafficSignal struct {
	Sample TrafficSample
	Known  bool
}

// ScoringInputs is the read-only snapshot of traffic and road-condition
// signals consumed when scoring one candidate set. Signals are keyed by
// segment name. Not cached across calls.
type ScoringInputs struct {
	Signals           map[string]TrafficSignal
	FreeFlowSpeedKmh  float64
	ReferenceCapacity float64
}

// Per-segment traffic limits configured by operators. Nil limits are
// unset, not zero.
type TrafficThreshold struct {
	Segment           string
	VehicleCountLimit *int
	DensityLimit      *float64
}

// A road-damage observation snapped onto the network.
type DamageReport struct {
	ID         string
	Point      Coordinates
	Severity   string
	NodeID     int
	ReportedAt time.Time
}
