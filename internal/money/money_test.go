// internal/money/money_test.go
package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPrice(t *testing.T) {
	assert.Equal(t, "9", UnitPrice(decimal.RequireFromString("45.00"), 5).String())
	assert.Equal(t, "33.33", UnitPrice(decimal.RequireFromString("100.00"), 3).String())
	assert.Equal(t, "0.01", UnitPrice(decimal.RequireFromString("0.02"), 3).String())
}

func TestProfit(t *testing.T) {
	// amount - cost*quantity, never clamped
	assert.Equal(t, "25", Profit(decimal.RequireFromString("125.00"), decimal.RequireFromString("20.00"), 5).String())
	assert.Equal(t, "-5", Profit(decimal.RequireFromString("45.00"), decimal.RequireFromString("10.00"), 5).String())
	assert.Equal(t, "45", Profit(decimal.RequireFromString("45.00"), decimal.Zero, 5).String())
}

func TestMarginPercent(t *testing.T) {
	assert.Equal(t, "50", MarginPercent(decimal.RequireFromString("100.00"), decimal.RequireFromString("150.00")).String())
	assert.Equal(t, "33.33", MarginPercent(decimal.RequireFromString("75.00"), decimal.RequireFromString("100.00")).String())
	assert.Equal(t, "-20", MarginPercent(decimal.RequireFromString("50.00"), decimal.RequireFromString("40.00")).String())
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 50.0, GrowthPercent(150, 100))
	assert.Equal(t, -25.0, GrowthPercent(75, 100))

	// No baseline means no growth, never a division by zero.
	assert.Equal(t, 0.0, GrowthPercent(500, 0))
	assert.Equal(t, 0.0, GrowthPercent(500, -10))
}

func TestOptionalAmountUnmarshal(t *testing.T) {
	type payload struct {
		Cost OptionalAmount `json:"cost"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Cost.Set)
	assert.False(t, absent.Cost.Valid)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"cost": null}`), &null))
	assert.True(t, null.Cost.Set)
	assert.False(t, null.Cost.Valid)

	var empty payload
	require.NoError(t, json.Unmarshal([]byte(`{"cost": ""}`), &empty))
	assert.True(t, empty.Cost.Set)
	assert.False(t, empty.Cost.Valid)

	var number payload
	require.NoError(t, json.Unmarshal([]byte(`{"cost": 12.5}`), &number))
	assert.True(t, number.Cost.Set)
	assert.True(t, number.Cost.Valid)
	assert.Equal(t, "12.5", number.Cost.Value.String())

	var str payload
	require.NoError(t, json.Unmarshal([]byte(`{"cost": "7.25"}`), &str))
	assert.True(t, str.Cost.Set)
	assert.True(t, str.Cost.Valid)
	assert.Equal(t, "7.25", str.Cost.Value.String())

	var bad payload
	assert.Error(t, json.Unmarshal([]byte(`{"cost": "abc"}`), &bad))
}
