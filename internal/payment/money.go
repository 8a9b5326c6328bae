package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

var minorDigits = map[string]int32{
	"JPY": 0, "KRW": 0, "VND": 0, "CLP": 0, "ISK": 0,
	"KWD": 3, "BHD": 3, "OMR": 3, "JOD": 3, "TND": 3,
}

// MinorDigits количество знаков после запятой у валюты
func MinorDigits(currency string) int32 {
	if d, ok := minorDigits[strings.ToUpper(currency)]; ok {
		return d
	}
	return 2
}

// Epsilon половина минимальной единицы валюты
func Epsilon(currency string) decimal.Decimal {
	return decimal.New(5, -(MinorDigits(currency) + 1))
}

// AmountsMatch суммы совпадают после округления до минимальной единицы
func AmountsMatch(paid, expected decimal.Decimal, currency string) bool {
	return paid.Sub(expected).Abs().LessThan(Epsilon(currency))
}

func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	return amount.Shift(MinorDigits(currency)).Round(0).IntPart()
}

func FromMinorUnits(units int64, currency string) decimal.Decimal {
	return decimal.New(units, -MinorDigits(currency))
}
