package inventory

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRepo struct {
	ingredients map[uuid.UUID]*models.Ingredient
	movements   []*models.StockMovement
}

func newStubRepo(ingredients ...*models.Ingredient) *stubRepo {
	byID := map[uuid.UUID]*models.Ingredient{}
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	return &stubRepo{ingredients: byID}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	ingredient.ID = uuid.New()
	s.ingredients[ingredient.ID] = ingredient
	return ingredient, nil
}

func (s *stubRepo) FindIngredientByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ing
	return &copied, nil
}

func (s *stubRepo) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, ing := range s.ingredients {
		out = append(out, *ing)
	}
	return out, nil
}

func (s *stubRepo) ListBelowMinStock(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, ing := range s.ingredients {
		if ing.Stock < ing.MinStock {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateIngredient(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubRepo) SetStock(ctx context.Context, id uuid.UUID, stock float64) error {
	ing, ok := s.ingredients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ing.Stock = stock
	return nil
}

func (s *stubRepo) CreateMovement(ctx context.Context, movement *models.StockMovement) error {
	s.movements = append(s.movements, movement)
	return nil
}

func (s *stubRepo) ListMovements(ctx context.Context, ingredientID uuid.UUID, limit int) ([]models.StockMovement, error) {
	var out []models.StockMovement
	for _, m := range s.movements {
		if m.IngredientID == ingredientID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type stubProducts struct {
	products []models.Product
}

func (s stubProducts) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return s.products, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository, products recipeSource) Service {
	t.Helper()
	svc, err := NewService(repo, products, stubTxRunner{}, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, stubProducts{}, stubTxRunner{}, testLogger()); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(newStubRepo(), nil, stubTxRunner{}, testLogger()); err == nil {
		t.Fatal("expected error without recipe source")
	}
}

func TestCreateIngredientValidation(t *testing.T) {
	svc := newTestService(t, newStubRepo(), stubProducts{})

	cases := []struct {
		name  string
		input CreateIngredientInput
	}{
		{"blank name", CreateIngredientInput{Name: " ", Unit: enums.IngredientUnitGram}},
		{"bad unit", CreateIngredientInput{Name: "Susu", Unit: "liters"}},
		{"negative stock", CreateIngredientInput{Name: "Susu", Unit: enums.IngredientUnitML, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, gotErr := svc.CreateIngredient(context.Background(), tc.input)
			if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", gotErr)
			}
		})
	}
}

func TestAdjustStockRestock(t *testing.T) {
	ing := &models.Ingredient{ID: uuid.New(), Name: "Biji kopi", Unit: enums.IngredientUnitGram, Stock: 500}
	repo := newStubRepo(ing)
	svc := newTestService(t, repo, stubProducts{})

	updated, err := svc.AdjustStock(context.Background(), AdjustStockInput{
		IngredientID: ing.ID,
		Type:         enums.StockMovementTypeRestock,
		Qty:          1000,
	})
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.Stock != 1500 {
		t.Fatalf("expected stock 1500, got %v", updated.Stock)
	}
	if len(repo.movements) != 1 || repo.movements[0].Type != enums.StockMovementTypeRestock {
		t.Fatalf("expected restock movement, got %+v", repo.movements)
	}
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	ing := &models.Ingredient{ID: uuid.New(), Name: "Susu", Unit: enums.IngredientUnitML, Stock: 200}
	repo := newStubRepo(ing)
	svc := newTestService(t, repo, stubProducts{})

	updated, err := svc.AdjustStock(context.Background(), AdjustStockInput{
		IngredientID: ing.ID,
		Type:         enums.StockMovementTypeAdjustment,
		Qty:          -500,
	})
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if updated.Stock != 0 {
		t.Fatalf("expected stock clamped to 0, got %v", updated.Stock)
	}
}

func TestAdjustStockRejectsSaleType(t *testing.T) {
	svc := newTestService(t, newStubRepo(), stubProducts{})

	_, gotErr := svc.AdjustStock(context.Background(), AdjustStockInput{
		IngredientID: uuid.New(),
		Type:         enums.StockMovementTypeSale,
		Qty:          -10,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestDeductForOrderConsumesRecipe(t *testing.T) {
	beans := &models.Ingredient{ID: uuid.New(), Name: "Biji kopi", Unit: enums.IngredientUnitGram, Stock: 1000}
	milk := &models.Ingredient{ID: uuid.New(), Name: "Susu", Unit: enums.IngredientUnitML, Stock: 2000}
	repo := newStubRepo(beans, milk)

	productID := uuid.New()
	products := stubProducts{products: []models.Product{{
		ID: productID,
		Recipe: []models.RecipeItem{
			{IngredientID: beans.ID, QtyPerUnit: 18},
			{IngredientID: milk.ID, QtyPerUnit: 150},
		},
	}}}
	svc := newTestService(t, repo, products)

	order := &models.Order{
		ID: uuid.New(),
		LineItems: []models.OrderLineItem{
			{ProductID: &productID, Qty: 2},
		},
	}
	if err := svc.DeductForOrder(context.Background(), order); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if beans.Stock != 1000-36 {
		t.Fatalf("expected beans 964, got %v", beans.Stock)
	}
	if milk.Stock != 2000-300 {
		t.Fatalf("expected milk 1700, got %v", milk.Stock)
	}
	if len(repo.movements) != 2 {
		t.Fatalf("expected 2 sale movements, got %d", len(repo.movements))
	}
	for _, m := range repo.movements {
		if m.Type != enums.StockMovementTypeSale {
			t.Fatalf("expected sale movement, got %s", m.Type)
		}
		if m.OrderID == nil || *m.OrderID != order.ID {
			t.Fatal("expected movement linked to order")
		}
		if m.Qty >= 0 {
			t.Fatalf("expected negative qty, got %v", m.Qty)
		}
	}
}

func TestDeductForOrderRecordsShortage(t *testing.T) {
	milk := &models.Ingredient{ID: uuid.New(), Name: "Susu", Unit: enums.IngredientUnitML, Stock: 100}
	repo := newStubRepo(milk)

	productID := uuid.New()
	products := stubProducts{products: []models.Product{{
		ID: productID,
		Recipe: []models.RecipeItem{
			{IngredientID: milk.ID, QtyPerUnit: 150},
		},
	}}}
	svc := newTestService(t, repo, products)

	order := &models.Order{
		ID:        uuid.New(),
		LineItems: []models.OrderLineItem{{ProductID: &productID, Qty: 1}},
	}
	if err := svc.DeductForOrder(context.Background(), order); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if milk.Stock != 0 {
		t.Fatalf("expected stock clamped to 0, got %v", milk.Stock)
	}
	if len(repo.movements) != 2 {
		t.Fatalf("expected sale + shortage movements, got %d", len(repo.movements))
	}
	var sawShortage bool
	for _, m := range repo.movements {
		if m.Type == enums.StockMovementTypeShortage {
			sawShortage = true
			if m.Qty != -50 {
				t.Fatalf("expected shortage qty -50, got %v", m.Qty)
			}
		}
	}
	if !sawShortage {
		t.Fatal("expected shortage movement")
	}
}

func TestDeductForOrderNoRecipeIsNoop(t *testing.T) {
	repo := newStubRepo()
	productID := uuid.New()
	svc := newTestService(t, repo, stubProducts{products: []models.Product{{ID: productID}}})

	order := &models.Order{
		ID:        uuid.New(),
		LineItems: []models.OrderLineItem{{ProductID: &productID, Qty: 1}},
	}
	if err := svc.DeductForOrder(context.Background(), order); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if len(repo.movements) != 0 {
		t.Fatalf("expected no movements, got %d", len(repo.movements))
	}
}

func TestDeductForOrderSkipsDeletedProductLines(t *testing.T) {
	beans := &models.Ingredient{ID: uuid.New(), Name: "Biji kopi", Unit: enums.IngredientUnitGram, Stock: 1000}
	repo := newStubRepo(beans)

	productID := uuid.New()
	products := stubProducts{products: []models.Product{{
		ID:     productID,
		Recipe: []models.RecipeItem{{IngredientID: beans.ID, QtyPerUnit: 18}},
	}}}
	svc := newTestService(t, repo, products)

	// A line whose product was deleted keeps a null product reference.
	order := &models.Order{
		ID: uuid.New(),
		LineItems: []models.OrderLineItem{
			{ProductID: nil, Name: "Menu lama", Qty: 3},
			{ProductID: &productID, Qty: 1},
		},
	}
	if err := svc.DeductForOrder(context.Background(), order); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if beans.Stock != 1000-18 {
		t.Fatalf("expected only the live line deducted, got %v", beans.Stock)
	}
	if len(repo.movements) != 1 {
		t.Fatalf("expected 1 sale movement, got %d", len(repo.movements))
	}
}
