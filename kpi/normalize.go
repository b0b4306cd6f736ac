package kpi

import (
	"math"
	"strconv"
	"strings"
)

// ParsePercent converts a captured percentage like "82.5%" into a Value.
// The trailing percent sign and surrounding whitespace are stripped and
// the remainder parsed as a float. Empty input, input without a trailing
// percent sign, or non-numeric content all degrade to absent; this
// function never panics.
func ParsePercent(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasSuffix(raw, "%") {
		return Value{}
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	return parseFinite(raw)
}

// ParseCurrency converts a captured amount like "1,234,567" into a
// Value. Comma grouping separators and all whitespace are stripped
// before parsing. Malformed input degrades to absent; this function
// never panics.
func ParseCurrency(raw string) Value {
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.Join(strings.Fields(raw), "")
	if raw == "" {
		return Value{}
	}
	return parseFinite(raw)
}

// parseFinite parses s as a float, treating parse failures and
// non-finite results as absent so NaN never enters a row.
func parseFinite(s string) Value {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Some(f)
}
