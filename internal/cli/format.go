// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatIncome formats a whole-dollar income with separators.
// e.g., 80000 -> "$80,000"
func FormatIncome(n int64) string {
	if n < 0 {
		return "-" + FormatIncome(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatDollars formats a dollar amount with two decimals, or none when the
// amount is at least 1000.
func FormatDollars(v float64) string {
	if v < 0 {
		return "-" + FormatDollars(-v)
	}
	if v >= 1000 {
		return "$" + humanize.Comma(int64(math.Round(v)))
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatMillions formats an amount already expressed in millions.
// e.g., -83.6 -> "-$83.6M"
func FormatMillions(m float64) string {
	if m < 0 {
		return "-" + FormatMillions(-m)
	}
	return "$" + humanize.CommafWithDigits(m, 1) + "M"
}

// FormatPercent formats a value already on the 0-100 scale.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatChange formats a signed percentage change, keeping small values
// such as a 0.01% Gini change visible.
func FormatChange(p float64) string {
	switch {
	case p == 0:
		return "no change"
	case p > 0:
		return "+" + humanize.Ftoa(p) + "%"
	default:
		return humanize.Ftoa(p) + "%"
	}
}

// FormatRate formats a tax rate on the 0-100 scale.
func FormatRate(r float64) string {
	return humanize.Ftoa(r) + "%"
}
