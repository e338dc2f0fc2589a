package insights

import (
	"math"
	"time"

	"tddbank/internal/core"
)

const recentLimit = 5

// Filter narrows a bundle's transactions by calendar month and year.
// Zero values mean "unset"; months are 1-based (time.January == 1).
// Both conditions apply conjunctively when both are set.
type Filter struct {
	Month time.Month
	Year  int
}

// Active reports whether at least one filter dimension is set.
func (f Filter) Active() bool {
	return f.Month != 0 || f.Year != 0
}

func (f Filter) matches(t core.Transaction) bool {
	if f.Month != 0 && t.Date.Month() != f.Month {
		return false
	}
	if f.Year != 0 && t.Date.Year() != f.Year {
		return false
	}
	return true
}

// View is the derived insights page state for one range and filter.
type View struct {
	Range                Range
	Filter               Filter
	FilteredTransactions []core.Transaction
	RecentTransactions   []core.Transaction
	TotalSpent           core.Money
	TotalIncome          core.Money
	NetSavings           core.Money
	SavingsRate          float64
	Categories           []core.CategoryAggregate
	Trend                []core.TrendPoint
}

// Derive computes the view for a bundle. With no filter active the
// totals come from the bundle's precomputed scalars; with a filter they
// are summed over the filtered transactions. The two paths are not
// guaranteed to agree, because the precomputed scalars are authored
// independently of the transaction fixtures. Category breakdown and
// trend always come from the bundle unfiltered.
func Derive(b Bundle, f Filter) View {
	filtered := make([]core.Transaction, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		if f.matches(t) {
			filtered = append(filtered, t)
		}
	}

	spent := b.TotalSpent
	income := b.TotalIncome
	if f.Active() {
		spent = sumByKind(filtered, core.Debit)
		income = sumByKind(filtered, core.Credit)
	}

	recent := filtered
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return View{
		Range:                b.Range,
		Filter:               f,
		FilteredTransactions: filtered,
		RecentTransactions:   recent,
		TotalSpent:           spent,
		TotalIncome:          income,
		NetSavings:           income.Sub(spent),
		SavingsRate:          savingsRate(spent, income),
		Categories:           b.Categories,
		Trend:                b.Trend,
	}
}

func sumByKind(transactions []core.Transaction, kind core.TransactionKind) core.Money {
	var total core.Money
	for _, t := range transactions {
		if t.Kind == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// savingsRate is (income - spent) / income * 100 rounded to one
// decimal place, and 0 when income is zero.
func savingsRate(spent, income core.Money) float64 {
	if income.Units == 0 {
		return 0
	}
	rate := float64(income.Units-spent.Units) / float64(income.Units) * 100
	return math.Round(rate*10) / 10
}

// MaxTrendAmount returns the largest trend bar, used to scale the chart.
// It returns zero money for an empty series.
func MaxTrendAmount(trend []core.TrendPoint) core.Money {
	var max core.Money
	for _, p := range trend {
		if p.Amount.Units > max.Units {
			max = p.Amount
		}
	}
	return max
}
