package usecase

import (
	"context"
	"testing"
	"time"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
)

func TestGetBarsValidation(t *testing.T) {
	uc := NewBarsUseCase(&fakeBarStore{bars: map[string][]models.Bar{}})
	if _, err := uc.GetBars(context.Background(), GetBarsParams{}); err == nil {
		t.Fatalf("missing symbol should fail")
	}
	now := time.Now()
	_, err := uc.GetBars(context.Background(), GetBarsParams{
		Symbol: "AAPL", From: now, To: now.Add(-time.Hour), Timeframe: domrepo.TF1d,
	})
	if err == nil {
		t.Fatalf("inverted range should fail")
	}
}

func TestGetBarsLimit(t *testing.T) {
	store := &fakeBarStore{bars: map[string][]models.Bar{"AAPL": someBars("AAPL", 100)}}
	uc := NewBarsUseCase(store)
	res, err := uc.GetBars(context.Background(), GetBarsParams{
		Symbol:    "AAPL",
		From:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Timeframe: domrepo.TF1d,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("get bars: %v", err)
	}
	if res.Count != 10 || len(res.Bars) != 10 {
		t.Fatalf("limit not applied: count %d", res.Count)
	}
}
