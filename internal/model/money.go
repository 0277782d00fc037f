package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits kept for prices and amounts.
const MoneyScale = 2

// MaxMoney is the largest value a decimal(12,2) column holds.
var MaxMoney = decimal.New(999999999999, -MoneyScale)

// ValidMoney reports whether d is positive and is stored without rounding
// or overflow.
func ValidMoney(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxMoney) && d.Equal(d.Truncate(MoneyScale))
}
