package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type recipeSource interface {
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service exposes ingredient stock operations.
type Service interface {
	CreateIngredient(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) error
	AdjustStock(ctx context.Context, input AdjustStockInput) (*models.Ingredient, error)
	ListMovements(ctx context.Context, ingredientID uuid.UUID, limit int) ([]models.StockMovement, error)

	DeductForOrder(ctx context.Context, order *models.Order) error
}

type service struct {
	repo     Repository
	products recipeSource
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds the inventory service.
func NewService(repo Repository, products recipeSource, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("recipe source required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, products: products, tx: tx, logg: logg}, nil
}

func (s *service) CreateIngredient(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name required")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid unit %q", input.Unit))
	}
	if input.Stock < 0 || input.MinStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels must not be negative")
	}

	ingredient := &models.Ingredient{
		Name:     name,
		Unit:     input.Unit,
		Stock:    input.Stock,
		MinStock: input.MinStock,
	}
	created, err := s.repo.CreateIngredient(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating ingredient")
	}
	return created, nil
}

func (s *service) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading ingredient")
	}
	return ingredient, nil
}

func (s *service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing ingredients")
	}
	return ingredients, nil
}

func (s *service) ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := s.repo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing low stock")
	}
	return ingredients, nil
}

func (s *service) UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) error {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "ingredient name required")
		}
		updates["name"] = name
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "min stock must not be negative")
		}
		updates["min_stock"] = *input.MinStock
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updates provided")
	}
	if _, err := s.GetIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateIngredient(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating ingredient")
	}
	return nil
}

// AdjustStock applies a manual restock or correction and records the
// movement. The resulting stock level never goes below zero.
func (s *service) AdjustStock(ctx context.Context, input AdjustStockInput) (*models.Ingredient, error) {
	if input.Type != enums.StockMovementTypeRestock && input.Type != enums.StockMovementTypeAdjustment {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("movement type %q cannot be applied manually", input.Type))
	}
	if input.Qty == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be zero")
	}
	if input.Type == enums.StockMovementTypeRestock && input.Qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}

	var updated *models.Ingredient
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ingredient, err := repo.FindIngredientByID(ctx, input.IngredientID)
		if err != nil {
			return err
		}
		next := ingredient.Stock + input.Qty
		if next < 0 {
			next = 0
		}
		if err := repo.SetStock(ctx, ingredient.ID, next); err != nil {
			return err
		}
		movement := &models.StockMovement{
			IngredientID: ingredient.ID,
			Type:         input.Type,
			Qty:          input.Qty,
			Note:         input.Note,
		}
		if err := repo.CreateMovement(ctx, movement); err != nil {
			return err
		}
		ingredient.Stock = next
		updated = ingredient
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjusting stock")
	}
	return updated, nil
}

func (s *service) ListMovements(ctx context.Context, ingredientID uuid.UUID, limit int) ([]models.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	movements, err := s.repo.ListMovements(ctx, ingredientID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing movements")
	}
	return movements, nil
}

// DeductForOrder consumes ingredients for a committed sale. The order is
// already final, so deductions clamp at zero and the unfulfilled part is
// recorded as a shortage movement instead of failing the sale.
func (s *service) DeductForOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order required")
	}
	deductions, err := s.resolveDeductions(ctx, order)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving recipes")
	}
	if len(deductions) == 0 {
		return nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, d := range deductions {
			ingredient, err := repo.FindIngredientByID(ctx, d.IngredientID)
			if err != nil {
				return err
			}
			deducted := d.Qty
			shortage := 0.0
			if ingredient.Stock < d.Qty {
				deducted = ingredient.Stock
				shortage = d.Qty - ingredient.Stock
			}
			if err := repo.SetStock(ctx, ingredient.ID, ingredient.Stock-deducted); err != nil {
				return err
			}
			if deducted > 0 {
				movement := &models.StockMovement{
					IngredientID: ingredient.ID,
					Type:         enums.StockMovementTypeSale,
					Qty:          -deducted,
					OrderID:      &order.ID,
				}
				if err := repo.CreateMovement(ctx, movement); err != nil {
					return err
				}
			}
			if shortage > 0 {
				note := fmt.Sprintf("short %.3f %s on sale", shortage, ingredient.Unit)
				movement := &models.StockMovement{
					IngredientID: ingredient.ID,
					Type:         enums.StockMovementTypeShortage,
					Qty:          -shortage,
					OrderID:      &order.ID,
					Note:         &note,
				}
				if err := repo.CreateMovement(ctx, movement); err != nil {
					return err
				}
				logCtx := s.logg.WithOrderID(ctx, order.ID.String())
				logCtx = s.logg.WithField(logCtx, "ingredient_id", ingredient.ID.String())
				s.logg.Warn(logCtx, "stock ran out mid-sale, recorded shortage")
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deducting stock")
	}
	return nil
}

// resolveDeductions flattens order lines through product recipes into one
// aggregated quantity per ingredient.
func (s *service) resolveDeductions(ctx context.Context, order *models.Order) ([]Deduction, error) {
	qtyByProduct := map[uuid.UUID]int{}
	for _, line := range order.LineItems {
		if line.ProductID == nil {
			// Line references a product deleted since the sale; nothing to deduct.
			continue
		}
		qtyByProduct[*line.ProductID] += line.Qty
	}
	ids := make([]uuid.UUID, 0, len(qtyByProduct))
	for id := range qtyByProduct {
		ids = append(ids, id)
	}
	products, err := s.products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	totals := map[uuid.UUID]float64{}
	for _, product := range products {
		qty := qtyByProduct[product.ID]
		for _, item := range product.Recipe {
			totals[item.IngredientID] += item.QtyPerUnit * float64(qty)
		}
	}

	deductions := make([]Deduction, 0, len(totals))
	for id, qty := range totals {
		if qty <= 0 {
			continue
		}
		deductions = append(deductions, Deduction{IngredientID: id, Qty: qty})
	}
	sort.Slice(deductions, func(i, j int) bool {
		return deductions[i].IngredientID.String() < deductions[j].IngredientID.String()
	})
	return deductions, nil
}
