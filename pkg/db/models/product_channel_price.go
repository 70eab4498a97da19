package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductChannelPrice overrides a product's price on a marketplace
// channel (gofood, grabfood), which typically carries a markup.
type ProductChannelPrice struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_channel"`
	Channel   string    `gorm:"column:channel;not null;uniqueIndex:idx_product_channel"`
	Price     int64     `gorm:"column:price;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
