package insights

import (
	"testing"
	"time"

	"tddbank/internal/core"
)

func mustBundle(t *testing.T, r Range) Bundle {
	t.Helper()
	b, err := BundleFor(r)
	if err != nil {
		t.Fatalf("BundleFor(%s) failed: %v", r, err)
	}
	return b
}

func TestBundleForUnknownRange(t *testing.T) {
	if _, err := BundleFor(Range("decade")); err != ErrUnknownRange {
		t.Fatalf("BundleFor(decade) error = %v, want ErrUnknownRange", err)
	}
}

func TestDeriveUnfilteredUsesPrecomputedTotals(t *testing.T) {
	tests := []struct {
		r          Range
		wantSpent  int64
		wantIncome int64
	}{
		{RangeWeek, 6500, 8000},
		{RangeMonth, 28450, 45000},
		{RangeYear, 325640, 520000},
	}

	for _, tt := range tests {
		v := Derive(mustBundle(t, tt.r), Filter{})
		if v.TotalSpent.Units != tt.wantSpent {
			t.Fatalf("%s total spent = %d, want %d", tt.r, v.TotalSpent.Units, tt.wantSpent)
		}
		if v.TotalIncome.Units != tt.wantIncome {
			t.Fatalf("%s total income = %d, want %d", tt.r, v.TotalIncome.Units, tt.wantIncome)
		}
	}
}

func TestDeriveDecemberYearFilter(t *testing.T) {
	b := mustBundle(t, RangeYear)
	v := Derive(b, Filter{Month: time.December})

	if len(v.FilteredTransactions) != 3 {
		t.Fatalf("filtered transactions = %d, want 3", len(v.FilteredTransactions))
	}

	wantMerchants := map[string]bool{
		"Holiday Celebrations": false,
		"Annual Bills":         false,
		"Salary Deposit":       false,
	}
	for _, tr := range v.FilteredTransactions {
		if _, ok := wantMerchants[tr.Merchant]; !ok {
			t.Fatalf("unexpected transaction %q in December filter", tr.Merchant)
		}
		wantMerchants[tr.Merchant] = true
	}
	for merchant, seen := range wantMerchants {
		if !seen {
			t.Fatalf("transaction %q missing from December filter", merchant)
		}
	}

	if v.TotalSpent.Units != 83600 {
		t.Fatalf("December total spent = %d, want 83600", v.TotalSpent.Units)
	}
	if v.TotalIncome.Units != 45000 {
		t.Fatalf("December total income = %d, want 45000", v.TotalIncome.Units)
	}
	if v.SavingsRate != -85.8 {
		t.Fatalf("December savings rate = %v, want -85.8", v.SavingsRate)
	}
}

func TestDeriveEmptyMonth(t *testing.T) {
	// The week bundle only carries January 2026 transactions.
	b := mustBundle(t, RangeWeek)
	v := Derive(b, Filter{Month: time.June})

	if len(v.FilteredTransactions) != 0 {
		t.Fatalf("filtered transactions = %d, want 0", len(v.FilteredTransactions))
	}
	if len(v.RecentTransactions) != 0 {
		t.Fatalf("recent transactions = %d, want 0", len(v.RecentTransactions))
	}
	if v.TotalSpent.Units != 0 || v.TotalIncome.Units != 0 {
		t.Fatalf("filtered totals = %d/%d, want 0/0", v.TotalSpent.Units, v.TotalIncome.Units)
	}
	if v.SavingsRate != 0 {
		t.Fatalf("savings rate with zero income = %v, want 0", v.SavingsRate)
	}
}

func TestDeriveConjunctiveFilters(t *testing.T) {
	b := mustBundle(t, RangeMonth)

	// Month matches, year does not: no transactions survive.
	v := Derive(b, Filter{Month: time.January, Year: 2024})
	if len(v.FilteredTransactions) != 0 {
		t.Fatalf("January 2024 filter matched %d transactions, want 0", len(v.FilteredTransactions))
	}

	// Both match: January 2025 has five transactions in the month bundle.
	v = Derive(b, Filter{Month: time.January, Year: 2025})
	if len(v.FilteredTransactions) != 5 {
		t.Fatalf("January 2025 filter matched %d transactions, want 5", len(v.FilteredTransactions))
	}
	if v.TotalSpent.Units != 7749 {
		t.Fatalf("January 2025 total spent = %d, want 7749", v.TotalSpent.Units)
	}
	if v.TotalIncome.Units != 45000 {
		t.Fatalf("January 2025 total income = %d, want 45000", v.TotalIncome.Units)
	}
}

func TestDeriveYearFilterAlone(t *testing.T) {
	b := mustBundle(t, RangeWeek)

	// Week transactions are dated 2026; a 2026 year filter keeps all of
	// them, and the totals switch to the summed path.
	v := Derive(b, Filter{Year: 2026})
	if len(v.FilteredTransactions) != 4 {
		t.Fatalf("2026 filter matched %d transactions, want 4", len(v.FilteredTransactions))
	}
	if v.TotalSpent.Units != 6500 {
		t.Fatalf("2026 total spent = %d, want 6500", v.TotalSpent.Units)
	}
	if v.TotalIncome.Units != 0 {
		t.Fatalf("2026 total income = %d, want 0 (no credits in week bundle)", v.TotalIncome.Units)
	}
}

func TestDeriveRecentCappedAtFive(t *testing.T) {
	b := mustBundle(t, RangeYear)
	v := Derive(b, Filter{Year: 2025})

	if len(v.RecentTransactions) != 5 {
		t.Fatalf("recent transactions = %d, want 5", len(v.RecentTransactions))
	}
	// Recent keeps fixture order, no re-sorting.
	for i, tr := range v.RecentTransactions {
		if tr.ID != v.FilteredTransactions[i].ID {
			t.Fatalf("recent[%d] = %s, want %s (fixture order)", i, tr.ID, v.FilteredTransactions[i].ID)
		}
	}
}

func TestDeriveCategoriesAndTrendUnaffectedByFilter(t *testing.T) {
	b := mustBundle(t, RangeYear)
	unfiltered := Derive(b, Filter{})
	filtered := Derive(b, Filter{Month: time.December})

	if len(filtered.Categories) != len(unfiltered.Categories) {
		t.Fatalf("filter changed category count: %d vs %d", len(filtered.Categories), len(unfiltered.Categories))
	}
	if len(filtered.Trend) != len(unfiltered.Trend) {
		t.Fatalf("filter changed trend length: %d vs %d", len(filtered.Trend), len(unfiltered.Trend))
	}
}

func TestSavingsRateRounding(t *testing.T) {
	tests := []struct {
		name   string
		spent  int64
		income int64
		want   float64
	}{
		{"zero income", 1000, 0, 0},
		{"month bundle rate", 28450, 45000, 36.8},
		{"exact half", 875, 1000, 12.5},
		{"negative rate", 83600, 45000, -85.8},
		{"all saved", 0, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := savingsRate(core.Money{Units: tt.spent}, core.Money{Units: tt.income})
			if got != tt.want {
				t.Fatalf("savingsRate(%d, %d) = %v, want %v", tt.spent, tt.income, got, tt.want)
			}
		})
	}
}

func TestMaxTrendAmount(t *testing.T) {
	b := mustBundle(t, RangeMonth)
	if got := MaxTrendAmount(b.Trend); got.Units != 8200 {
		t.Fatalf("max trend = %d, want 8200", got.Units)
	}
	if got := MaxTrendAmount(nil); got.Units != 0 {
		t.Fatalf("max of empty trend = %d, want 0", got.Units)
	}
}

func TestFixtureTransactionsValid(t *testing.T) {
	for _, r := range Ranges() {
		b := mustBundle(t, r)
		for _, tr := range b.Transactions {
			if err := tr.Validate(); err != nil {
				t.Fatalf("%s fixture transaction %s invalid: %v", r, tr.ID, err)
			}
		}
	}
}
