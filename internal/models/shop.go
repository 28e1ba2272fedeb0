// internal/models/shop.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Shop struct {
	BaseModel
	Name      string              `json:"name" gorm:"size:200;not null"`
	RegionID  uuid.UUID           `json:"region_id" gorm:"type:uuid;not null;index"`
	Phone     string              `json:"phone" gorm:"size:50"`
	Latitude  decimal.NullDecimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude decimal.NullDecimal `json:"longitude" gorm:"type:decimal(10,7)"`
	Size      ShopSize            `json:"size" gorm:"type:varchar(20);default:'medium';not null"`
	Status    ShopStatus          `json:"status" gorm:"type:varchar(20);default:'active';not null;index"`

	// Relationships
	Region   *Region   `json:"region,omitempty" gorm:"foreignKey:RegionID"`
	Products []Product `json:"products,omitempty" gorm:"many2many:shop_products"`
}

func (s *Shop) HasCoordinates() bool {
	return s.Latitude.Valid && s.Longitude.Valid
}
