package render

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-houseprice/pkg/model"
)

// CurrencySymbol prefixes every rendered price.
const CurrencySymbol = "$"

// PriceLabel introduces the price in the results line.
const PriceLabel = "Estimated Price: "

// exactDigits covers every fractional digit a float64 can carry.
const exactDigits = 1074

// FormatPrice renders v with the currency symbol and exactly two decimal
// places, matching a browser's toFixed(2): the exact binary value of v is
// rounded half away from zero, so 1.005 renders as $1.00 and 0.125 as $0.13.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return CurrencySymbol + strconv.FormatFloat(v, 'f', 2, 64)
	}
	exact, err := decimal.NewFromString(new(big.Float).SetFloat64(v).Text('f', exactDigits))
	if err != nil {
		return CurrencySymbol + strconv.FormatFloat(v, 'f', 2, 64)
	}
	return CurrencySymbol + exact.StringFixed(2)
}

// PriceLine returns the results line for p, or "" when no price is set.
func PriceLine(p model.Price) string {
	if !p.Valid {
		return ""
	}
	return PriceLabel + FormatPrice(p.Value)
}
