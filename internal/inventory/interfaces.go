package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
)

// Repository defines persistence operations for ingredient stock.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error)
	FindIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SetStock(ctx context.Context, id uuid.UUID, stock float64) error
	CreateMovement(ctx context.Context, movement *models.StockMovement) error
	ListMovements(ctx context.Context, ingredientID uuid.UUID, limit int) ([]models.StockMovement, error)
}

// Deduction is one ingredient decrement derived from a sold line item.
type Deduction struct {
	IngredientID uuid.UUID
	Qty          float64
}
