package catalog

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FinalPrice applies a percent discount to price and rounds the result to
// two decimal places, half away from zero.
func FinalPrice(price, percentDiscount float64) float64 {
	p := decimal.NewFromFloat(price)
	discount := decimal.NewFromFloat(percentDiscount).Div(hundred)

	final, _ := p.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2).Float64()
	if final < 0 {
		return 0
	}
	return final
}
