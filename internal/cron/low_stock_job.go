package cron

import (
	"context"
	"fmt"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type lowStockReader interface {
	ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error)
}

// LowStockJobParams configure the low stock reporter.
type LowStockJobParams struct {
	Logger    *logger.Logger
	Inventory lowStockReader
}

// NewLowStockJob builds the cron job that flags ingredients running
// below their minimum stock level.
func NewLowStockJob(params LowStockJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	return &lowStockJob{
		logg:      params.Logger,
		inventory: params.Inventory,
	}, nil
}

type lowStockJob struct {
	logg      *logger.Logger
	inventory lowStockReader
}

func (j *lowStockJob) Name() string { return "low-stock" }

func (j *lowStockJob) Run(ctx context.Context) error {
	ingredients, err := j.inventory.ListBelowMinStock(ctx)
	if err != nil {
		return fmt.Errorf("list low stock: %w", err)
	}
	for _, ingredient := range ingredients {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"ingredient_id": ingredient.ID.String(),
			"name":          ingredient.Name,
			"stock":         ingredient.Stock,
			"min_stock":     ingredient.MinStock,
			"unit":          ingredient.Unit.String(),
		})
		j.logg.Warn(logCtx, "ingredient below minimum stock")
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": len(ingredients)})
	j.logg.Info(logCtx, "low stock check complete")
	return nil
}
