package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountsMatch(t *testing.T) {
	d := decimal.RequireFromString

	testCases := []struct {
		name     string
		paid     decimal.Decimal
		expected decimal.Decimal
		currency string
		want     bool
	}{
		{name: "exact", paid: d("9.99"), expected: d("9.99"), currency: "USD", want: true},
		{name: "trailing zeros", paid: d("9.990000"), expected: d("9.99"), currency: "USD", want: true},
		{name: "sub cent noise", paid: d("9.9949"), expected: d("9.99"), currency: "USD", want: true},
		{name: "half cent", paid: d("9.995"), expected: d("9.99"), currency: "USD", want: false},
		{name: "one cent short", paid: d("9.98"), expected: d("9.99"), currency: "USD", want: false},
		{name: "yen has no minor unit", paid: d("1000.4"), expected: d("1000"), currency: "JPY", want: true},
		{name: "yen off by one", paid: d("1001"), expected: d("1000"), currency: "JPY", want: false},
		{name: "dinar three digits", paid: d("3.001"), expected: d("3.000"), currency: "KWD", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AmountsMatch(tc.paid, tc.expected, tc.currency))
		})
	}
}

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 999, ToMinorUnits(decimal.RequireFromString("9.99"), "USD"))
	assert.EqualValues(t, 1000, ToMinorUnits(decimal.RequireFromString("1000"), "JPY"))
	assert.True(t, FromMinorUnits(999, "usd").Equal(decimal.RequireFromString("9.99")))
}
