package types

import (
	"fmt"
	"math"
	"strings"
)

// FormatCost renders a cost for display, rounded to cents with thousands
// separators ("$1,200.00"). Estimators never round; only presentation does.
func FormatCost(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$-"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	whole, cents, _ := strings.Cut(s, ".")

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	return sign + "$" + sb.String() + "." + cents
}
