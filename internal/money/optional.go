// internal/money/optional.go
package money

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OptionalAmount is a tri-state JSON field: absent, explicit null (or empty
// string), or a value. Partial-update payloads need the distinction: an
// absent cost override keeps the stored snapshot, an explicit null clears it.
type OptionalAmount struct {
	Set   bool // key was present in the payload
	Valid bool // a non-null value was given
	Value decimal.Decimal
}

func (o *OptionalAmount) UnmarshalJSON(data []byte) error {
	o.Set = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		o.Valid = false
		return nil
	}
	// Accept both numbers and numeric strings, like the legacy clients send.
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		o.Value = d
		o.Valid = true
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return err
	}
	o.Value = d
	o.Valid = true
	return nil
}

func (o OptionalAmount) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
