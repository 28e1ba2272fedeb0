// internal/models/region.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Polygon is an ordered sequence of [longitude, latitude] pairs stored as
// JSONB.
type Polygon [][]float64

func (p Polygon) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *Polygon) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, p)
}

type Region struct {
	BaseModel
	Name      string              `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Latitude  decimal.NullDecimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude decimal.NullDecimal `json:"longitude" gorm:"type:decimal(10,7)"`
	Polygon   Polygon             `json:"polygon_coordinates" gorm:"type:jsonb"`
	Status    RegionStatus        `json:"status" gorm:"type:varchar(20);default:'planned';not null;index"`

	Shops []Shop `json:"shops,omitempty" gorm:"foreignKey:RegionID"`
}
