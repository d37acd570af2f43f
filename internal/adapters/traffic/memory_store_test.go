package traffic

import (
	"context"
	"testing"
	"time"

	"traffic-route-service/internal/domain"
)

func sampleAt(segment string, count int, speed float64, at time.Time) domain.TrafficSample {
	return domain.TrafficSample{
		Segment:      segment,
		VehicleCount: count,
		AverageSpeed: speed,
		RecordedAt:   at,
	}
}

func TestMemoryStoreLatestSample(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, ok, err := store.LatestSample(ctx, "main"); err != nil || ok {
		t.Fatalf("expected no sample yet, got ok=%v err=%v", ok, err)
	}

	if err := store.RecordSample(ctx, sampleAt("main", 10, 50, base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordSample(ctx, sampleAt("main", 30, 20, base.Add(time.Minute))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := store.LatestSample(ctx, "main")
	if err != nil || !ok {
		t.Fatalf("expected a sample, got ok=%v err=%v", ok, err)
	}
	if got.VehicleCount != 30 {
		t.Fatalf("expected the newest sample (count 30), got %d", got.VehicleCount)
	}
}

func TestMemoryStoreLatestSamples(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.RecordSample(ctx, sampleAt("a", 5, 60, base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordSample(ctx, sampleAt("b", 8, 40, base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.LatestSamples(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if _, present := got["missing"]; present {
		t.Fatal("segments without data must be absent from the result")
	}
}

func TestMemoryStoreHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := store.RecordSample(ctx, sampleAt("main", i, 50, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history, err := store.History(ctx, "main", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i, h := range history {
		if h.VehicleCount != 4-i {
			t.Fatalf("entry %d: expected count %d, got %d", i, 4-i, h.VehicleCount)
		}
	}
}

func TestMemoryStoreThresholds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok, err := store.GetThreshold(ctx, "main"); err != nil || ok {
		t.Fatalf("expected no threshold yet, got ok=%v err=%v", ok, err)
	}

	limit := 120
	if err := store.PutThreshold(ctx, domain.TrafficThreshold{Segment: "main", VehicleCountLimit: &limit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := store.GetThreshold(ctx, "main")
	if err != nil || !ok {
		t.Fatalf("expected a threshold, got ok=%v err=%v", ok, err)
	}
	if got.VehicleCountLimit == nil || *got.VehicleCountLimit != 120 {
		t.Fatalf("expected vehicle count limit 120, got %+v", got)
	}
	if got.DensityLimit != nil {
		t.Fatal("expected density limit to stay unset")
	}

	// Upsert replaces the previous threshold.
	newLimit := 80
	if err := store.PutThreshold(ctx, domain.TrafficThreshold{Segment: "main", VehicleCountLimit: &newLimit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _, _ = store.GetThreshold(ctx, "main")
	if *got.VehicleCountLimit != 80 {
		t.Fatalf("expected updated limit 80, got %d", *got.VehicleCountLimit)
	}
}

func TestMemoryStoreSummary(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.RecordSample(ctx, sampleAt("quiet", 2, 60, base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordSample(ctx, sampleAt("busy", 90, 10, base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordSample(ctx, sampleAt("busy", 110, 8, base.Add(time.Minute))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SegmentCount != 2 {
		t.Fatalf("expected 2 segments, got %d", summary.SegmentCount)
	}
	if summary.SampleCount != 3 {
		t.Fatalf("expected 3 samples, got %d", summary.SampleCount)
	}
	if summary.MostCongestedSegment != "busy" {
		t.Fatalf("expected busy as most congested, got %q", summary.MostCongestedSegment)
	}
	want := (60.0 + 10.0 + 8.0) / 3.0
	if summary.AverageSpeedKmh != want {
		t.Fatalf("expected average speed %v, got %v", want, summary.AverageSpeedKmh)
	}
}
