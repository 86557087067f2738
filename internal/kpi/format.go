// Package kpi resolves dashboard headline metrics and formats them for
// display. Values computed from the currently filtered table win; the
// precomputed summary record is only a fallback for empty views.
package kpi

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// PlaceholderUSD renders instead of a missing, NaN, or zero currency value.
const PlaceholderUSD = "$0"

// PlaceholderNA renders instead of a missing non-currency value.
const PlaceholderNA = "N/A"

// FormatUSD buckets a dollar amount into abbreviated units with two decimal
// places: >=1e9 "B", >=1e6 "M", >=1e3 "K", else the raw amount.
func FormatUSD(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderUSD
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1e9:
		return sign + "$" + fixed(v/1e9) + "B"
	case v >= 1e6:
		return sign + "$" + fixed(v/1e6) + "M"
	case v >= 1e3:
		return sign + "$" + fixed(v/1e3) + "K"
	default:
		return sign + "$" + fixed(v)
	}
}

// FormatPercent renders a percentage with two decimals and a trailing sign.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderNA
	}
	return fixed(v) + "%"
}

// FormatRatio renders a plain ratio (P/F, P/R) with two decimals.
func FormatRatio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderNA
	}
	return fixed(v)
}

// FormatGini renders a Gini coefficient with three decimals.
func FormatGini(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderNA
	}
	return decimal.NewFromFloat(v).StringFixed(3)
}

// FormatAmount renders a token amount with thousands separators and two
// decimals.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderNA
	}
	d := decimal.NewFromFloat(v).StringFixed(2)
	dot := strings.IndexByte(d, '.')
	return groupThousands(d[:dot]) + d[dot:]
}

// FormatCount renders a whole number with thousands separators.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return PlaceholderNA
	}
	return groupThousands(fmt.Sprintf("%.0f", v))
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
