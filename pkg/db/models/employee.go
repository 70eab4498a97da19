package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// Employee is a staff account that can sign in at the register.
type Employee struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Email        string             `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         enums.EmployeeRole `gorm:"column:role;not null;default:'cashier'"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
