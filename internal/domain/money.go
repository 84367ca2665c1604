package domain

import (
	"fmt"
	"math"
)

// TaxRatePercent — ставка GST, применяемая к подытогу.
const TaxRatePercent = 5

// CurrencySymbol выводится перед каждой денежной суммой.
const CurrencySymbol = "₹"

// Bill агрегирует суммы счёта в минимальных единицах.
type Bill struct {
	SubtotalMinor int64
	TaxMinor      int64
	TotalMinor    int64
}

// NewBill считает налог и итог для заданного подытога.
func NewBill(subtotalMinor int64) Bill {
	tax := TaxMinor(subtotalMinor)
	return Bill{
		SubtotalMinor: subtotalMinor,
		TaxMinor:      tax,
		TotalMinor:    subtotalMinor + tax,
	}
}

// TaxMinor округляет subtotal * 5% до целой пайсы (half away from zero).
func TaxMinor(subtotalMinor int64) int64 {
	scaled := subtotalMinor * TaxRatePercent
	if scaled >= 0 {
		return (scaled + 50) / 100
	}
	return (scaled - 50) / 100
}

// MinorFromMajor переводит сумму в рупиях в пайсы с округлением.
func MinorFromMajor(major float64) int64 {
	return int64(math.Round(major * 100))
}

// MajorFromMinor переводит пайсы обратно в рупии.
func MajorFromMinor(minor int64) float64 {
	return float64(minor) / 100
}

// FormatMinor форматирует сумму с двумя знаками после запятой и символом валюты.
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, CurrencySymbol, minor/100, minor%100)
}
