// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbol = "$"

// SetCurrency overrides the currency symbol used by money formatting.
func SetCurrency(symbol string) {
	if symbol != "" {
		currencySymbol = symbol
	}
}

// FormatMoney formats a currency amount with symbol, thousands
// separators, and two decimal places. e.g., 1234.5 -> "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	neg := d.Sign() < 0
	abs := d.Abs().Round(2)

	intPart := abs.Truncate(0)
	frac := abs.Sub(intPart).Shift(2).IntPart()

	s := fmt.Sprintf("%s%s.%02d", currencySymbol, FormatNumber(intPart.IntPart()), frac)
	if neg {
		return "-" + s
	}
	return s
}

// FormatSignedMoney is FormatMoney with an explicit leading sign,
// used for deltas. e.g., "+$12.00" / "-$4.25"
func FormatSignedMoney(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatPercent formats a percentage value to one decimal place.
// The input is already on the 0-100 scale.
func FormatPercent(d decimal.Decimal) string {
	return d.Round(1).StringFixed(1) + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
