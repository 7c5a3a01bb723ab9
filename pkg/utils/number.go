package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundWithTwoDecimalPlace arredonda para duas casas, metade para longe do zero
func RoundWithTwoDecimalPlace(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(2)
}

// Percentage retorna part / total * 100 com duas casas decimais.
// Total zero resulta em zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return RoundWithTwoDecimalPlace(part.Mul(hundred).Div(total))
}
