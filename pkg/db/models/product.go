package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a menu entry. Price is the outlet price in whole rupiah;
// marketplace channels may override it via ChannelPrices.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    *uuid.UUID            `gorm:"column:category_id;type:uuid"`
	Name          string                `gorm:"column:name;not null"`
	SKU           *string               `gorm:"column:sku;uniqueIndex"`
	Price         int64                 `gorm:"column:price;not null"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true"`
	ChannelPrices []ProductChannelPrice `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Recipe        []RecipeItem          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceFor returns the unit price for the given marketplace channel,
// falling back to the outlet price when no override exists.
func (p Product) PriceFor(channel string) int64 {
	for _, cp := range p.ChannelPrices {
		if cp.Channel == channel {
			return cp.Price
		}
	}
	return p.Price
}
