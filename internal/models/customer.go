// internal/models/customer.go
package models

import (
	"github.com/shopspring/decimal"
)

type Customer struct {
	BaseModel
	Name           string              `json:"name" gorm:"size:200;not null"`
	AdditionalName string              `json:"additional_name" gorm:"size:200"`
	Phone          string              `json:"phone" gorm:"size:50"`
	Address        string              `json:"address" gorm:"type:text"`
	Latitude       decimal.NullDecimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude      decimal.NullDecimal `json:"longitude" gorm:"type:decimal(10,7)"`

	Sales []Sale `json:"sales,omitempty" gorm:"foreignKey:CustomerID"`
}

func (c *Customer) HasCoordinates() bool {
	return c.Latitude.Valid && c.Longitude.Valid
}
