package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders a dollar amount with thousands separators, no cents.
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// FormatPct renders a fraction as a percentage with one decimal.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
