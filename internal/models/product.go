// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurgarden/ngms-backend/internal/money"
)

type Product struct {
	BaseModel
	Name          string              `json:"name" gorm:"size:200;not null"`
	PackageType   string              `json:"package_type" gorm:"size:50;not null"` // 250g, 500g, 1kg, 5kg, 10kg
	PurchasePrice decimal.Decimal     `json:"purchase_price" gorm:"type:decimal(10,2);not null"`
	SalePrice     decimal.Decimal     `json:"sale_price" gorm:"type:decimal(10,2);not null"`
	MarginPercent decimal.NullDecimal `json:"margin_percent" gorm:"type:decimal(5,2)"`
	Status        ProductStatus       `json:"status" gorm:"type:varchar(20);default:'active';not null;index"`
	SupplierID    *uuid.UUID          `json:"supplier_id" gorm:"type:uuid;index"`

	// Relationships
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Sales    []Sale    `json:"sales,omitempty" gorm:"foreignKey:ProductID"`
}

// CalculateMargin derives margin_percent from the two prices. It is the only
// way the field is ever written.
func (p *Product) CalculateMargin() {
	if p.PurchasePrice.IsZero() {
		p.MarginPercent = decimal.NullDecimal{}
		return
	}
	p.MarginPercent = decimal.NullDecimal{
		Decimal: money.MarginPercent(p.PurchasePrice, p.SalePrice),
		Valid:   true,
	}
}
