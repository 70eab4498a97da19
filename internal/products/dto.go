package products

import (
	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// CreateProductInput carries the fields needed to add a menu entry.
type CreateProductInput struct {
	Name          string
	CategoryID    *uuid.UUID
	SKU           *string
	Price         int64
	ChannelPrices []ChannelPriceInput
	Recipe        []RecipeItemInput
}

// UpdateProductInput carries optional menu entry updates.
type UpdateProductInput struct {
	Name       *string
	CategoryID *uuid.UUID
	Price      *int64
	IsActive   *bool
}

// ChannelPriceInput sets a marketplace price override.
type ChannelPriceInput struct {
	Channel enums.PaymentMethod
	Price   int64
}

// RecipeItemInput maps one ingredient consumed per unit sold.
type RecipeItemInput struct {
	IngredientID uuid.UUID
	QtyPerUnit   float64
}

// CategoryInput carries category create/update fields.
type CategoryInput struct {
	Name      string
	SortOrder int
}
