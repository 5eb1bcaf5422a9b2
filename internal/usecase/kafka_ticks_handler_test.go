package usecase

import (
	"context"
	"testing"
	"time"
)

func TestKafkaTicksHandlerMillis(t *testing.T) {
	store := &fakeTickStore{}
	h := NewKafkaTicksHandler("price-ticks", store, nopMetrics{})

	msg := []byte(`{"symbol":"AAPL","t":1714557600000,"c":187.5,"v":1200}`)
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(store.stored) != 1 {
		t.Fatalf("expected 1 stored tick, got %d", len(store.stored))
	}
	tick := store.stored[0]
	if tick.Symbol != "AAPL" || tick.Price != 187.5 || tick.Volume != 1200 {
		t.Fatalf("unexpected tick %+v", tick)
	}
	want := time.UnixMilli(1714557600000).UTC()
	if !tick.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", tick.Timestamp, want)
	}
}

func TestKafkaTicksHandlerSeconds(t *testing.T) {
	store := &fakeTickStore{}
	h := NewKafkaTicksHandler("price-ticks", store, nopMetrics{})

	msg := []byte(`{"symbol":"AAPL","t":1714557600,"c":187.5,"v":0}`)
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	want := time.Unix(1714557600, 0).UTC()
	if !store.stored[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", store.stored[0].Timestamp, want)
	}
}

func TestKafkaTicksHandlerBadPayload(t *testing.T) {
	h := NewKafkaTicksHandler("price-ticks", &fakeTickStore{}, nopMetrics{})
	if err := h.Handle(context.Background(), []byte("not json")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestKafkaTicksHandlerTopic(t *testing.T) {
	h := NewKafkaTicksHandler("price-ticks", &fakeTickStore{}, nopMetrics{})
	if h.Topic() != "price-ticks" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}
}
