// internal/models/sale.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the ledger row for an offline (customer) sale. unit_price,
// purchase_price_at_sale and profit are snapshotted at write time: later
// edits to the product's prices never touch an existing sale.
type Sale struct {
	BaseModel
	CustomerID          uuid.UUID           `json:"customer_id" gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID           `json:"product_id" gorm:"type:uuid;not null;index"`
	ShopID              *uuid.UUID          `json:"shop_id" gorm:"type:uuid;index"`
	Quantity            int                 `json:"quantity" gorm:"not null;default:1"`
	Amount              decimal.Decimal     `json:"amount" gorm:"type:decimal(10,2);not null"`
	UnitPrice           decimal.NullDecimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	PurchasePriceAtSale decimal.NullDecimal `json:"purchase_price_at_sale" gorm:"type:decimal(10,2)"`
	Profit              decimal.NullDecimal `json:"profit" gorm:"type:decimal(10,2)"`
	SaleDate            time.Time           `json:"sale_date" gorm:"type:date;not null;index"`

	// Relationships
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Product  *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Shop     *Shop     `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
}

// OnlineSale is the marketplace variant: tied to a platform instead of a
// customer, with no cost or profit tracking.
type OnlineSale struct {
	BaseModel
	Platform  SalesPlatform   `json:"platform" gorm:"type:varchar(50);not null"`
	ProductID *uuid.UUID      `json:"product_id" gorm:"type:uuid;index"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	SaleDate  time.Time       `json:"sale_date" gorm:"type:date;not null;index"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
