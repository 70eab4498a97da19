package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

// Repository defines persistence operations for the menu tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	ListProducts(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpsertChannelPrice(ctx context.Context, price *models.ProductChannelPrice) error
	ReplaceRecipe(ctx context.Context, productID uuid.UUID, items []models.RecipeItem) error

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Search     string
}

// ProductList is a cursor-paginated page of products.
type ProductList struct {
	Items      []models.Product
	NextCursor string
}
