package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry sold at the register.
// Sales never reference it by FK — line items snapshot name and price, so a
// product may be deleted without corrupting history.
type Product struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string          `gorm:"index;not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock int             `gorm:"not null;default:0"`
	// MinStock drives the low-stock report and the alert worker.
	MinStock  int     `gorm:"not null;default:10"`
	Barcode   *string `gorm:"uniqueIndex"`
	ImageURL  *string `gorm:"column:image_url"`
	Active    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "products" }
