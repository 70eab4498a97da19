package shifts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
)

// Repository defines persistence operations for register shifts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, shift *models.Shift) (*models.Shift, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	FindOpen(ctx context.Context) (*models.Shift, error)
	List(ctx context.Context, limit int) ([]models.Shift, error)
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.Shift, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SumCashSales(ctx context.Context, shiftID uuid.UUID) (int64, error)
}
