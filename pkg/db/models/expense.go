package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is an out-of-pocket cost recorded against the day's books.
type Expense struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Description string    `gorm:"column:description;not null"`
	Amount      int64     `gorm:"column:amount;not null"`
	SpentAt     time.Time `gorm:"column:spent_at;not null;index"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
