package domain

import "github.com/shopspring/decimal"

// 金额列为 decimal(p,2)；整数位数 = p - 2
const (
	MoneyScale  = 2
	PriceDigits = 10 // decimal(12,2)
	TotalDigits = 12 // decimal(14,2)
)

// FitsMoney 至多两位小数，且整数部分不超过 intDigits 位
func FitsMoney(d decimal.Decimal, intDigits int32) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(decimal.New(1, intDigits))
}
