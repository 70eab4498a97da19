package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem snapshots a sold item. Subtotal is unit price times
// quantity before any order-level discount; the discount is never
// redistributed across lines.
type OrderLineItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name      string     `gorm:"column:name;not null"`
	UnitPrice int64      `gorm:"column:unit_price;not null"`
	Qty       int        `gorm:"column:qty;not null"`
	Subtotal  int64      `gorm:"column:subtotal;not null"`
	Note      *string    `gorm:"column:note"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
