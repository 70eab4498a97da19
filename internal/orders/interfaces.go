package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	"github.com/rainadr/kasirkopi-backend/pkg/pagination"
)

// Repository defines persistence operations for committed orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	NextNumber(ctx context.Context) (int64, error)
}

// OrderFilters narrows order listings.
type OrderFilters struct {
	Status  *enums.OrderStatus
	ShiftID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// OrderList is a cursor-paginated page of orders.
type OrderList struct {
	Items      []models.Order
	NextCursor string
}
