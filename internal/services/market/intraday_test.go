package market

import (
	"testing"
	"time"

	"TrendPulse/internal/domain/models"
)

func TestMaterializeDensity(t *testing.T) {
	preds := []models.Prediction{{
		Day:            time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		BaselinePrice:  100,
		PredictedPrice: 101,
	}}

	points := Materialize(preds)
	if len(points) != 24*30 {
		t.Fatalf("expected %d points, got %d", 24*30, len(points))
	}
	first, last := points[0], points[len(points)-1]
	if !first.Timestamp.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first timestamp %v", first.Timestamp)
	}
	if !last.Timestamp.Equal(time.Date(2024, 5, 2, 23, 58, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last timestamp %v", last.Timestamp)
	}
	for _, p := range points {
		if p.PredictedPrice != 101 || p.Bias != models.BiasPositive {
			t.Fatalf("unexpected point %+v", p)
		}
	}
}

func TestMaterializeNegativeBias(t *testing.T) {
	preds := []models.Prediction{{
		Day:            time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		BaselinePrice:  100,
		PredictedPrice: 99,
	}}
	points := Materialize(preds)
	if len(points) == 0 || points[0].Bias != models.BiasNegative {
		t.Fatalf("expected negative bias")
	}
}

func TestMaterializeSkipsFlat(t *testing.T) {
	preds := []models.Prediction{{
		Day:            time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		BaselinePrice:  100,
		PredictedPrice: 100,
	}}
	if points := Materialize(preds); len(points) != 0 {
		t.Fatalf("expected no points for flat prediction, got %d", len(points))
	}
}
