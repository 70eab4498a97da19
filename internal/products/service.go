package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes menu management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetChannelPrice(ctx context.Context, productID uuid.UUID, input ChannelPriceInput) error
	SetRecipe(ctx context.Context, productID uuid.UUID, items []RecipeItemInput) error

	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the menu service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	for _, cp := range input.ChannelPrices {
		if !cp.Channel.IsMarketplace() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("channel %q has no price list", cp.Channel))
		}
		if cp.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "channel price must not be negative")
		}
	}
	for _, ri := range input.Recipe {
		if ri.IngredientID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe ingredient id required")
		}
		if ri.QtyPerUnit <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe quantity must be positive")
		}
	}

	product := &models.Product{
		Name:       name,
		CategoryID: input.CategoryID,
		SKU:        input.SKU,
		Price:      input.Price,
		IsActive:   true,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.CreateProduct(ctx, product)
		if err != nil {
			return err
		}
		for _, cp := range input.ChannelPrices {
			price := &models.ProductChannelPrice{
				ProductID: created.ID,
				Channel:   cp.Channel.String(),
				Price:     cp.Price,
			}
			if err := repo.UpsertChannelPrice(ctx, price); err != nil {
				return err
			}
		}
		if len(input.Recipe) > 0 {
			items := make([]models.RecipeItem, 0, len(input.Recipe))
			for _, ri := range input.Recipe {
				items = append(items, models.RecipeItem{
					ProductID:    created.ID,
					IngredientID: ri.IngredientID,
					QtyPerUnit:   ri.QtyPerUnit,
				})
			}
			if err := repo.ReplaceRecipe(ctx, created.ID, items); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return s.repo.FindProductByID(ctx, product.ID)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error) {
	list, err := s.repo.ListProducts(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return list, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) error {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		updates["name"] = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.CategoryID != nil {
		updates["category_id"] = *input.CategoryID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updates provided")
	}

	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

func (s *service) SetChannelPrice(ctx context.Context, productID uuid.UUID, input ChannelPriceInput) error {
	if !input.Channel.IsMarketplace() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("channel %q has no price list", input.Channel))
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "channel price must not be negative")
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return err
	}
	price := &models.ProductChannelPrice{
		ProductID: productID,
		Channel:   input.Channel.String(),
		Price:     input.Price,
	}
	if err := s.repo.UpsertChannelPrice(ctx, price); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving channel price")
	}
	return nil
}

func (s *service) SetRecipe(ctx context.Context, productID uuid.UUID, items []RecipeItemInput) error {
	for _, ri := range items {
		if ri.IngredientID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "recipe ingredient id required")
		}
		if ri.QtyPerUnit <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "recipe quantity must be positive")
		}
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return err
	}

	rows := make([]models.RecipeItem, 0, len(items))
	for _, ri := range items {
		rows = append(rows, models.RecipeItem{
			ProductID:    productID,
			IngredientID: ri.IngredientID,
			QtyPerUnit:   ri.QtyPerUnit,
		})
	}
	if err := s.repo.ReplaceRecipe(ctx, productID, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving recipe")
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category := &models.Category{Name: name, SortOrder: input.SortOrder}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating category")
	}
	return created, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	err := s.repo.UpdateCategory(ctx, id, map[string]any{
		"name":       name,
		"sort_order": input.SortOrder,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating category")
	}
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting category")
	}
	return nil
}
