package http

import (
	"net/url"
	"testing"
	"time"

	"tddbank/internal/insights"
)

func TestParseRangeParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantRange insights.Range
		wantMonth time.Month
		wantYear  int
	}{
		{"defaults to month", "", insights.RangeMonth, 0, 0},
		{"explicit range", "range=year", insights.RangeYear, 0, 0},
		{"unknown range falls back", "range=decade", insights.RangeMonth, 0, 0},
		{"month and year filters", "range=year&prev_range=year&month=12&year=2025", insights.RangeYear, time.December, 2025},
		{"month out of bounds ignored", "range=year&prev_range=year&month=13", insights.RangeYear, 0, 0},
		{"zero month ignored", "range=year&prev_range=year&month=0", insights.RangeYear, 0, 0},
		{"negative year ignored", "range=year&prev_range=year&year=-3", insights.RangeYear, 0, 0},
		{"range switch drops filters", "range=week&prev_range=month&month=5&year=2025", insights.RangeWeek, 0, 0},
		{"same range keeps filters", "range=month&prev_range=month&month=5&year=2025", insights.RangeMonth, time.May, 2025},
		{"no prev_range keeps filters", "range=month&month=5", insights.RangeMonth, time.May, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			rng, filter := parseRangeParams(q)
			if rng != tt.wantRange {
				t.Fatalf("range = %q, want %q", rng, tt.wantRange)
			}
			if filter.Month != tt.wantMonth {
				t.Fatalf("month = %v, want %v", filter.Month, tt.wantMonth)
			}
			if filter.Year != tt.wantYear {
				t.Fatalf("year = %d, want %d", filter.Year, tt.wantYear)
			}
		})
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		units int64
		want  string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{45000, "₹45,000"},
		{83600, "₹83,600"},
		{325640, "₹3,25,640"},
		{1234567, "₹12,34,567"},
		{-2500, "-₹2,500"},
	}

	for _, tt := range tests {
		if got := formatINR(tt.units); got != tt.want {
			t.Fatalf("formatINR(%d) = %q, want %q", tt.units, got, tt.want)
		}
	}
}

func TestFormatSignedINR(t *testing.T) {
	if got := formatSignedINR(2500, true); got != "+₹2,500" {
		t.Fatalf("credit = %q", got)
	}
	if got := formatSignedINR(2500, false); got != "-₹2,500" {
		t.Fatalf("debit = %q", got)
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday passed this year", time.Date(2008, time.March, 1, 0, 0, 0, 0, time.UTC), 18},
		{"birthday later this year", time.Date(2008, time.December, 1, 0, 0, 0, 0, time.UTC), 17},
		{"birthday today counts", time.Date(2008, time.August, 30, 0, 0, 0, 0, time.UTC), 18},
		{"birthday tomorrow does not", time.Date(2008, time.August, 31, 0, 0, 0, 0, time.UTC), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ageAt(tt.birth, now); got != tt.want {
				t.Fatalf("ageAt = %d, want %d", got, tt.want)
			}
		})
	}
}
