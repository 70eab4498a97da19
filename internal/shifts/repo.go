package shifts

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

// NewRepository builds a shifts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shift *models.Shift) (*models.Shift, error) {
	if err := r.db.WithContext(ctx).Create(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *repository) FindOpen(ctx context.Context) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.ShiftStatusOpen).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]models.Shift, error) {
	var rows []models.Shift
	err := r.db.WithContext(ctx).
		Order("opened_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.Shift, error) {
	var rows []models.Shift
	err := r.db.WithContext(ctx).
		Where("status = ? AND opened_at < ?", enums.ShiftStatusOpen, cutoff).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) SumCashSales(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("shift_id = ? AND status = ? AND payment_method = ?",
			shiftID, enums.OrderStatusPaid, enums.PaymentMethodCash).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
