package usecase

import (
	"context"
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

type fakePublisher struct {
	published []*models.PriceTick
	closed    bool
}

func (f *fakePublisher) Publish(_ context.Context, tick *models.PriceTick) error {
	f.published = append(f.published, tick)
	return nil
}

func (f *fakePublisher) PublishBatch(_ context.Context, ticks []*models.PriceTick) error {
	f.published = append(f.published, ticks...)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func sampleTicks() []*models.PriceTick {
	return []*models.PriceTick{
		{Symbol: "AAPL", Timestamp: time.Now().UTC(), Price: 100},
		{Symbol: "AAPL", Timestamp: time.Now().UTC(), Price: 101},
	}
}

func TestTickProcessorKafkaBackend(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeTickStore{}
	p := NewTickProcessor(pub, store, nopMetrics{}, "kafka")

	if err := p.ProcessBatch(context.Background(), sampleTicks()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(pub.published) != 2 {
		t.Fatalf("expected 2 published ticks, got %d", len(pub.published))
	}
	if len(store.stored) != 0 {
		t.Fatalf("store should not be written on the kafka backend")
	}
}

func TestTickProcessorClickHouseBackend(t *testing.T) {
	store := &fakeTickStore{}
	p := NewTickProcessor(nil, store, nopMetrics{}, "clickhouse")

	if err := p.ProcessBatch(context.Background(), sampleTicks()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(store.stored) != 2 {
		t.Fatalf("expected 2 stored ticks, got %d", len(store.stored))
	}
}

func TestTickProcessorUnknownBackend(t *testing.T) {
	p := NewTickProcessor(nil, &fakeTickStore{}, nopMetrics{}, "carrier-pigeon")
	if err := p.ProcessBatch(context.Background(), sampleTicks()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestTickProcessorEmptyBatch(t *testing.T) {
	p := NewTickProcessor(nil, nil, nopMetrics{}, "kafka")
	if err := p.ProcessBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
}
