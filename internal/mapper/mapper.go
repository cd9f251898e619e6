// Package mapper converts between the persisted row shapes and the entities
// used by the admin service. Every function here is total: missing or
// malformed values become the zero value of the target field.
package mapper

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// ParseAmount reads a numeric column stored as text. Anything that does not
// parse as a finite number yields 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount is the canonical text form written back to numeric columns.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func amount(v float64) sql.NullString {
	return text(FormatAmount(v))
}

func firstNonEmpty(values ...sql.NullString) string {
	for _, v := range values {
		if v.Valid && v.String != "" {
			return v.String
		}
	}
	return ""
}
