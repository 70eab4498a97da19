package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// Ingredient tracks raw stock (beans, milk, cups) consumed by sales.
type Ingredient struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string               `gorm:"column:name;not null;uniqueIndex"`
	Unit      enums.IngredientUnit `gorm:"column:unit;not null"`
	Stock     float64              `gorm:"column:stock;type:numeric(14,3);not null;default:0"`
	MinStock  float64              `gorm:"column:min_stock;type:numeric(14,3);not null;default:0"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
