package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"tddbank/internal/insights"
)

// parseRangeParams extracts the time range and optional month/year
// filters. The range defaults to month; out-of-range or unparsable
// filter values are treated as unset.
func parseRangeParams(query url.Values) (insights.Range, insights.Filter) {
	rng := insights.RangeMonth
	if v := insights.Range(strings.TrimSpace(query.Get("range"))); v.Validate() == nil {
		rng = v
	}

	var filter insights.Filter
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			filter.Month = time.Month(m)
		}
	}
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			filter.Year = y
		}
	}

	// Switching range discards any filter carried over from the
	// previous selection.
	if prev := strings.TrimSpace(query.Get("prev_range")); prev != "" && prev != string(rng) {
		filter = insights.Filter{}
	}

	return rng, filter
}

// formatINR formats a whole rupee amount with Indian digit grouping,
// e.g. 325640 renders as "₹3,25,640".
func formatINR(units int64) string {
	neg := units < 0
	if neg {
		units = -units
	}

	digits := strconv.FormatInt(units, 10)
	var b strings.Builder
	n := len(digits)
	for i, d := range digits {
		b.WriteRune(d)
		rest := n - i - 1
		if rest == 0 {
			continue
		}
		// Groups of two after the last group of three.
		if rest == 3 || (rest > 3 && (rest-3)%2 == 0) {
			b.WriteByte(',')
		}
	}

	if neg {
		return "-₹" + b.String()
	}
	return "₹" + b.String()
}

// formatSignedINR prefixes credits with + and debits with -, the way
// the transaction list renders amounts.
func formatSignedINR(units int64, credit bool) string {
	if credit {
		return "+" + formatINR(units)
	}
	return "-" + formatINR(units)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
