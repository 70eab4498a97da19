package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
)

// Repository defines the aggregate queries behind sales reports.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	SalesByMethod(ctx context.Context, from, to time.Time) ([]MethodBreakdown, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
	SumExpenses(ctx context.Context, from, to time.Time) (int64, error)

	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// SalesSummary aggregates paid orders over a period.
type SalesSummary struct {
	OrderCount    int64 `json:"order_count"`
	GrossSales    int64 `json:"gross_sales"`
	TotalDiscount int64 `json:"total_discount"`
	NetSales      int64 `json:"net_sales"`
}

// MethodBreakdown is net sales for one payment method.
type MethodBreakdown struct {
	PaymentMethod string `json:"payment_method"`
	OrderCount    int64  `json:"order_count"`
	NetSales      int64  `json:"net_sales"`
}

// ProductSales ranks a product by units sold over a period.
type ProductSales struct {
	ProductID *uuid.UUID `json:"product_id"`
	Name      string     `json:"name"`
	QtySold   int64      `json:"qty_sold"`
	NetSales  int64      `json:"net_sales"`
}

// DailyReport is the owner's end-of-day view.
type DailyReport struct {
	From          time.Time         `json:"from"`
	To            time.Time         `json:"to"`
	Summary       SalesSummary      `json:"summary"`
	ByMethod      []MethodBreakdown `json:"by_method"`
	TopProducts   []ProductSales    `json:"top_products"`
	TotalExpenses int64             `json:"total_expenses"`
	NetIncome     int64             `json:"net_income"`
}
