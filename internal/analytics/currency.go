package analytics

import (
	"math"
	"strconv"
	"strings"
)

// ParseCurrencyValue reads a free-text price such as "1,500,000 so'm",
// "450 000" or "99,90". Thousands separators are dropped; a lone separator
// followed by exactly three digits is treated as a thousands separator.
// Unparseable input yields 0.
func ParseCurrencyValue(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = normalizeSeparators(cleaned)
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}

func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		// The separator that appears last is the decimal one.
		dec, thousands := ".", ","
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			dec, thousands = ",", "."
		}
		s = strings.ReplaceAll(s, thousands, "")
		if strings.Count(s, dec) > 1 {
			return ""
		}
		return strings.Replace(s, dec, ".", 1)
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots == 1 || commas == 1:
		sep := "."
		if commas == 1 {
			sep = ","
		}
		idx := strings.Index(s, sep)
		intPart, frac := s[:idx], s[idx+1:]
		if len(frac) == 3 && len(intPart) > 0 && len(intPart) <= 3 {
			return intPart + frac
		}
		return intPart + "." + frac
	}
	return s
}
