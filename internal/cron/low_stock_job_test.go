package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

type fakeLowStockReader struct {
	ingredients []models.Ingredient
	err         error
	calls       int
}

func (f *fakeLowStockReader) ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error) {
	f.calls++
	return f.ingredients, f.err
}

func TestLowStockJobListsIngredients(t *testing.T) {
	reader := &fakeLowStockReader{
		ingredients: []models.Ingredient{
			{ID: uuid.New(), Name: "Susu", Unit: enums.IngredientUnitML, Stock: 100, MinStock: 500},
		},
	}
	job, err := NewLowStockJob(LowStockJobParams{
		Logger:    cronTestLogger(),
		Inventory: reader,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if reader.calls != 1 {
		t.Fatalf("expected 1 inventory call, got %d", reader.calls)
	}
}

func TestLowStockJobPropagatesError(t *testing.T) {
	job, err := NewLowStockJob(LowStockJobParams{
		Logger:    cronTestLogger(),
		Inventory: &fakeLowStockReader{err: errors.New("boom")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
