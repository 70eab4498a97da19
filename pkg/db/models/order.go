package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// Order is a committed sale. All amounts are whole rupiah. The discount
// fields are always populated; an undiscounted order carries a fixed
// discount of zero. DiscountValue holds the value as entered, so a
// fractional percentage like 12.5 is kept verbatim while DiscountAmount
// carries the rupiah actually deducted. PaymentMethod stays nil on open
// (pay-later) orders until the tab is settled.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number         int64                `gorm:"column:number;not null;uniqueIndex"`
	Status         enums.OrderStatus    `gorm:"column:status;not null;default:'paid'"`
	CustomerName   string               `gorm:"column:customer_name;not null"`
	Note           *string              `gorm:"column:note"`
	EmployeeID     uuid.UUID            `gorm:"column:employee_id;type:uuid;not null;index"`
	ShiftID        *uuid.UUID           `gorm:"column:shift_id;type:uuid;index"`
	Subtotal       int64                `gorm:"column:subtotal;not null"`
	DiscountType   enums.DiscountType   `gorm:"column:discount_type;not null;default:'fixed'"`
	DiscountValue  float64              `gorm:"column:discount_value;not null;default:0"`
	DiscountAmount int64                `gorm:"column:discount_amount;not null;default:0"`
	Total          int64                `gorm:"column:total;not null"`
	PaymentMethod  *enums.PaymentMethod `gorm:"column:payment_method"`
	CashTendered   *int64               `gorm:"column:cash_tendered"`
	CashChange     *int64               `gorm:"column:cash_change"`
	PaidAt         *time.Time           `gorm:"column:paid_at"`
	LineItems      []OrderLineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
