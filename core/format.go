package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales/currency"
)

// FormatMoney renders an amount in US dollars with thousands separators, eg. $1,500.00
func FormatMoney(amount float64) string {
	if !isFinite(amount) {
		return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return Translator.FmtCurrency(amount, 2, currency.USD)
}

// FormatNumber renders num with 2 decimals, eg. 8.00
func FormatNumber(num float64) string {
	if !isFinite(num) {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	return Translator.FmtNumber(num, 2)
}

// FormatList renders values the short way, eg. [7, 9.5]
func FormatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
