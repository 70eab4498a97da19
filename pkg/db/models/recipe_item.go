package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipeItem maps a product to the ingredient quantity consumed per unit
// sold.
type RecipeItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_recipe_product_ingredient"`
	IngredientID uuid.UUID `gorm:"column:ingredient_id;type:uuid;not null;uniqueIndex:idx_recipe_product_ingredient"`
	QtyPerUnit   float64   `gorm:"column:qty_per_unit;type:numeric(14,3);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
