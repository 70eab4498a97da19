package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// Shift is a cashier session at the register. ExpectedCash is the
// opening float plus cash sales recorded while the shift was open.
type Shift struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID   uuid.UUID         `gorm:"column:employee_id;type:uuid;not null;index"`
	Status       enums.ShiftStatus `gorm:"column:status;not null;default:'open'"`
	OpeningFloat int64             `gorm:"column:opening_float;not null;default:0"`
	OpenedAt     time.Time         `gorm:"column:opened_at;not null"`
	ClosedAt     *time.Time        `gorm:"column:closed_at"`
	ExpectedCash *int64            `gorm:"column:expected_cash"`
	CountedCash  *int64            `gorm:"column:counted_cash"`
	Difference   *int64            `gorm:"column:difference"`
	Note         *string           `gorm:"column:note"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
