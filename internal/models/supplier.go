// internal/models/supplier.go
package models

type Supplier struct {
	BaseModel
	Name              string `json:"name" gorm:"size:200;not null"`
	Country           string `json:"country" gorm:"size:100"`
	Region            string `json:"region" gorm:"size:100"`
	ProductType       string `json:"product_type" gorm:"size:100"`
	PriceLevel        string `json:"price_level" gorm:"size:50"`
	ReliabilityRating int    `json:"reliability_rating" gorm:"default:3"` // 1..5
	ContactInfo       string `json:"contact_info" gorm:"type:text"`
	Notes             string `json:"notes" gorm:"type:text"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:SupplierID"`
}
