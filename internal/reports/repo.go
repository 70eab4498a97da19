package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) paidOrders(ctx context.Context, from, to time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			enums.OrderStatusPaid, from, to)
}

func (r *repository) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.paidOrders(ctx, from, to).
		Select(`COUNT(*) AS order_count,
			COALESCE(SUM(subtotal), 0) AS gross_sales,
			COALESCE(SUM(discount_amount), 0) AS total_discount,
			COALESCE(SUM(total), 0) AS net_sales`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repository) SalesByMethod(ctx context.Context, from, to time.Time) ([]MethodBreakdown, error) {
	var rows []MethodBreakdown
	err := r.paidOrders(ctx, from, to).
		Select(`payment_method,
			COUNT(*) AS order_count,
			COALESCE(SUM(total), 0) AS net_sales`).
		Group("payment_method").
		Order("net_sales DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Select(`order_line_items.product_id,
			order_line_items.name,
			COALESCE(SUM(order_line_items.qty), 0) AS qty_sold,
			COALESCE(SUM(order_line_items.subtotal), 0) AS net_sales`).
		Joins("JOIN orders ON orders.id = order_line_items.order_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?",
			enums.OrderStatusPaid, from, to).
		Group("order_line_items.product_id, order_line_items.name").
		Order("qty_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SumExpenses(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *repository) ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.WithContext(ctx).
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Order("spent_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Expense{}).Error
}
