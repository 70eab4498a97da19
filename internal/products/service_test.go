package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRepo struct {
	product       *models.Product
	findErr       error
	created       *models.Product
	channelPrices []*models.ProductChannelPrice
	recipe        []models.RecipeItem
	updates       map[string]any
	deleted       bool
	categories    []models.Category
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	s.created = product
	s.product = product
	return product, nil
}

func (s *stubRepo) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.product == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubRepo) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if s.product == nil {
		return nil, nil
	}
	return []models.Product{*s.product}, nil
}

func (s *stubRepo) ListProducts(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &ProductList{}, nil
}

func (s *stubRepo) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *stubRepo) UpsertChannelPrice(ctx context.Context, price *models.ProductChannelPrice) error {
	s.channelPrices = append(s.channelPrices, price)
	return nil
}

func (s *stubRepo) ReplaceRecipe(ctx context.Context, productID uuid.UUID, items []models.RecipeItem) error {
	s.recipe = items
	return nil
}

func (s *stubRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = uuid.New()
	s.categories = append(s.categories, *category)
	return category, nil
}

func (s *stubRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubRepo) UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.deleted = true
	return nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, stubTxRunner{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateProductSuccess(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:  "Kopi Susu",
		Price: 18000,
		ChannelPrices: []ChannelPriceInput{
			{Channel: enums.PaymentMethodGoFood, Price: 22000},
		},
		Recipe: []RecipeItemInput{
			{IngredientID: uuid.New(), QtyPerUnit: 20},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.Name != "Kopi Susu" {
		t.Fatalf("expected name persisted, got %q", created.Name)
	}
	if !created.IsActive {
		t.Fatal("expected new product active")
	}
	if len(repo.channelPrices) != 1 || repo.channelPrices[0].Channel != "gofood" {
		t.Fatalf("expected gofood channel price, got %+v", repo.channelPrices)
	}
	if len(repo.recipe) != 1 {
		t.Fatalf("expected recipe row, got %d", len(repo.recipe))
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, err := NewService(&stubRepo{}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"blank name", CreateProductInput{Name: "   ", Price: 10000}},
		{"negative price", CreateProductInput{Name: "Kopi", Price: -1}},
		{"cash channel price", CreateProductInput{
			Name:  "Kopi",
			Price: 10000,
			ChannelPrices: []ChannelPriceInput{
				{Channel: enums.PaymentMethodCash, Price: 12000},
			},
		}},
		{"zero recipe qty", CreateProductInput{
			Name:  "Kopi",
			Price: 10000,
			Recipe: []RecipeItemInput{
				{IngredientID: uuid.New(), QtyPerUnit: 0},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, gotErr := svc.CreateProduct(context.Background(), tc.input)
			if gotErr == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", gotErr)
			}
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestGetProductDependencyError(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: errors.New("boom")}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
}

func TestUpdateProductRequiresChanges(t *testing.T) {
	svc, err := NewService(&stubRepo{product: &models.Product{ID: uuid.New()}}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestUpdateProductAppliesFields(t *testing.T) {
	repo := &stubRepo{product: &models.Product{ID: uuid.New(), Name: "Kopi"}}
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	name := "Kopi Gula Aren"
	price := int64(20000)
	inactive := false
	if err := svc.UpdateProduct(context.Background(), repo.product.ID, UpdateProductInput{
		Name:     &name,
		Price:    &price,
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("update product: %v", err)
	}
	if repo.updates["name"] != "Kopi Gula Aren" {
		t.Fatalf("expected name update, got %v", repo.updates)
	}
	if repo.updates["price"] != int64(20000) {
		t.Fatalf("expected price update, got %v", repo.updates)
	}
	if repo.updates["is_active"] != false {
		t.Fatalf("expected is_active update, got %v", repo.updates)
	}
}

func TestSetChannelPriceRejectsCash(t *testing.T) {
	svc, err := NewService(&stubRepo{product: &models.Product{ID: uuid.New()}}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.SetChannelPrice(context.Background(), uuid.New(), ChannelPriceInput{
		Channel: enums.PaymentMethodQRIS,
		Price:   15000,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestSetRecipeReplacesRows(t *testing.T) {
	product := &models.Product{ID: uuid.New()}
	repo := &stubRepo{product: product}
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.SetRecipe(context.Background(), product.ID, []RecipeItemInput{
		{IngredientID: uuid.New(), QtyPerUnit: 18},
		{IngredientID: uuid.New(), QtyPerUnit: 150},
	}); err != nil {
		t.Fatalf("set recipe: %v", err)
	}
	if len(repo.recipe) != 2 {
		t.Fatalf("expected 2 recipe rows, got %d", len(repo.recipe))
	}
}

func TestCreateCategoryValidatesName(t *testing.T) {
	svc, err := NewService(&stubRepo{}, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.CreateCategory(context.Background(), CategoryInput{Name: " "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}
