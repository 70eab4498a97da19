package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// StockMovement is an append-only ledger entry for ingredient stock.
// Qty is signed; deductions are negative.
type StockMovement struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	IngredientID uuid.UUID               `gorm:"column:ingredient_id;type:uuid;not null;index"`
	Type         enums.StockMovementType `gorm:"column:type;not null"`
	Qty          float64                 `gorm:"column:qty;type:numeric(14,3);not null"`
	OrderID      *uuid.UUID              `gorm:"column:order_id;type:uuid;index"`
	Note         *string                 `gorm:"column:note"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
}
