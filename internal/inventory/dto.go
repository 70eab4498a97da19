package inventory

import (
	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// CreateIngredientInput carries the fields needed to register stock.
type CreateIngredientInput struct {
	Name     string
	Unit     enums.IngredientUnit
	Stock    float64
	MinStock float64
}

// UpdateIngredientInput carries optional ingredient updates.
type UpdateIngredientInput struct {
	Name     *string
	MinStock *float64
}

// AdjustStockInput applies a manual restock or correction.
type AdjustStockInput struct {
	IngredientID uuid.UUID
	Type         enums.StockMovementType
	Qty          float64
	Note         *string
}
