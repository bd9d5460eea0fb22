package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators ("1,000,000").
func FormatCount(n uint64) string {
	return printer.Sprintf("%d", n)
}

// FormatNumberString inserts thousands separators into a decimal string.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(n + n/3 + 1)
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatFloat renders a statistic with six decimals, or "undefined" for NaN.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.6f", v)
}

// FormatPercent renders a fraction as a percentage with two decimals.
func FormatPercent(fraction float64) string {
	if math.IsNaN(fraction) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", fraction*100)
}
