package insights

import (
	"errors"
	"time"

	"tddbank/internal/core"
)

// Range selects one of the three fixture bundles.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// ErrUnknownRange is returned for a range outside week/month/year.
var ErrUnknownRange = errors.New("unknown time range")

// Ranges lists the valid ranges in display order.
func Ranges() []Range {
	return []Range{RangeWeek, RangeMonth, RangeYear}
}

func (r Range) Validate() error {
	switch r {
	case RangeWeek, RangeMonth, RangeYear:
		return nil
	default:
		return ErrUnknownRange
	}
}

// Bundle groups the fixture data for one time range. Transactions are
// ordered as authored; the precomputed totals are independent of the
// transaction list and are only used when no month/year filter is set.
type Bundle struct {
	Range        Range
	Transactions []core.Transaction
	Categories   []core.CategoryAggregate
	Trend        []core.TrendPoint
	TotalSpent   core.Money
	TotalIncome  core.Money
}

// BundleFor returns the fixture bundle for the given range.
func BundleFor(r Range) (Bundle, error) {
	switch r {
	case RangeWeek:
		return weekBundle(), nil
	case RangeMonth:
		return monthBundle(), nil
	case RangeYear:
		return yearBundle(), nil
	default:
		return Bundle{}, ErrUnknownRange
	}
}

func tx(id, category string, amount int64, year int, month time.Month, day int, merchant string, kind core.TransactionKind) core.Transaction {
	return core.Transaction{
		ID:       id,
		Category: category,
		Amount:   core.Money{Units: amount},
		Date:     core.NewDate(year, month, day),
		Merchant: merchant,
		Kind:     kind,
	}
}

func weekBundle() Bundle {
	return Bundle{
		Range:       RangeWeek,
		TotalSpent:  core.Money{Units: 6500},
		TotalIncome: core.Money{Units: 8000},
		Transactions: []core.Transaction{
			tx("1", "Shopping", 2499, 2026, time.January, 13, "Amazon", core.Debit),
			tx("2", "Food", 850, 2026, time.January, 12, "Swiggy", core.Debit),
			tx("3", "Bills", 1200, 2026, time.January, 11, "Electricity Bill", core.Debit),
			tx("4", "Shopping", 1951, 2026, time.January, 10, "Flipkart", core.Debit),
		},
		Categories: []core.CategoryAggregate{
			{Category: "Shopping", Amount: core.Money{Units: 4450}, Percentage: 68.5, Tag: "purple"},
			{Category: "Food & Dining", Amount: core.Money{Units: 850}, Percentage: 13.1, Tag: "orange"},
			{Category: "Bills & Utilities", Amount: core.Money{Units: 1200}, Percentage: 18.4, Tag: "blue"},
		},
		Trend: []core.TrendPoint{
			{Label: "Mon", Amount: core.Money{Units: 1200}},
			{Label: "Tue", Amount: core.Money{Units: 2100}},
			{Label: "Wed", Amount: core.Money{Units: 950}},
			{Label: "Thu", Amount: core.Money{Units: 1300}},
			{Label: "Fri", Amount: core.Money{Units: 650}},
			{Label: "Sat", Amount: core.Money{Units: 300}},
		},
	}
}

func monthBundle() Bundle {
	return Bundle{
		Range:       RangeMonth,
		TotalSpent:  core.Money{Units: 28450},
		TotalIncome: core.Money{Units: 45000},
		Transactions: []core.Transaction{
			tx("1", "Shopping", 2499, 2025, time.January, 13, "Amazon", core.Debit),
			tx("2", "Income", 45000, 2025, time.January, 10, "Salary Deposit", core.Credit),
			tx("3", "Food", 850, 2025, time.January, 12, "Swiggy", core.Debit),
			tx("4", "Bills", 1200, 2025, time.January, 11, "Electricity Bill", core.Debit),
			tx("5", "Shopping", 3200, 2025, time.January, 9, "Flipkart", core.Debit),
			tx("6", "Shopping", 1800, 2025, time.February, 14, "Amazon", core.Debit),
			tx("7", "Income", 45000, 2025, time.February, 10, "Salary Deposit", core.Credit),
			tx("8", "Food", 920, 2025, time.February, 15, "Zomato", core.Debit),
			tx("9", "Bills", 1200, 2025, time.February, 8, "Water Bill", core.Debit),
			tx("10", "Transportation", 2500, 2025, time.February, 20, "Uber", core.Debit),
			tx("11", "Shopping", 3100, 2025, time.March, 12, "Flipkart", core.Debit),
			tx("12", "Income", 45000, 2025, time.March, 10, "Salary Deposit", core.Credit),
			tx("13", "Food", 750, 2025, time.March, 18, "Dominos", core.Debit),
			tx("14", "Entertainment", 1200, 2025, time.March, 22, "Movie Ticket", core.Debit),
			tx("15", "Shopping", 2200, 2025, time.April, 5, "Myntra", core.Debit),
			tx("16", "Income", 45000, 2025, time.April, 10, "Salary Deposit", core.Credit),
			tx("17", "Bills", 1500, 2025, time.April, 15, "Internet Bill", core.Debit),
			tx("18", "Food", 1800, 2025, time.May, 20, "Swiggy", core.Debit),
			tx("19", "Income", 45000, 2025, time.May, 10, "Salary Deposit", core.Credit),
			tx("20", "Shopping", 2800, 2025, time.May, 25, "Amazon", core.Debit),
			tx("21", "Transportation", 3000, 2025, time.June, 15, "Cab Service", core.Debit),
			tx("22", "Income", 45000, 2025, time.June, 10, "Salary Deposit", core.Credit),
			tx("23", "Food", 1200, 2025, time.June, 18, "Zomato", core.Debit),
			tx("24", "Shopping", 2100, 2025, time.July, 8, "Flipkart", core.Debit),
			tx("25", "Income", 45000, 2025, time.July, 10, "Salary Deposit", core.Credit),
			tx("26", "Bills", 1800, 2025, time.July, 12, "Electricity Bill", core.Debit),
			tx("27", "Food", 950, 2025, time.August, 22, "Swiggy", core.Debit),
			tx("28", "Income", 45000, 2025, time.August, 10, "Salary Deposit", core.Credit),
			tx("29", "Entertainment", 1500, 2025, time.August, 25, "Concert Ticket", core.Debit),
			tx("30", "Shopping", 2600, 2025, time.September, 14, "Amazon", core.Debit),
			tx("31", "Income", 45000, 2025, time.September, 10, "Salary Deposit", core.Credit),
			tx("32", "Bills", 1400, 2025, time.October, 5, "Water Bill", core.Debit),
			tx("33", "Income", 45000, 2025, time.October, 10, "Salary Deposit", core.Credit),
			tx("34", "Food", 1100, 2025, time.October, 20, "Dominos", core.Debit),
			tx("35", "Shopping", 3500, 2025, time.November, 15, "Black Friday Sale", core.Debit),
			tx("36", "Income", 45000, 2025, time.November, 10, "Salary Deposit", core.Credit),
			tx("37", "Food", 15600, 2025, time.December, 28, "Holiday Parties", core.Debit),
			tx("38", "Bills", 68000, 2025, time.December, 1, "Annual Bills", core.Debit),
			tx("39", "Income", 45000, 2025, time.December, 10, "Salary Deposit", core.Credit),
		},
		Categories: []core.CategoryAggregate{
			{Category: "Shopping", Amount: core.Money{Units: 8500}, Percentage: 29.9, Tag: "purple"},
			{Category: "Food & Dining", Amount: core.Money{Units: 6200}, Percentage: 21.8, Tag: "orange"},
			{Category: "Bills & Utilities", Amount: core.Money{Units: 5800}, Percentage: 20.4, Tag: "blue"},
			{Category: "Transportation", Amount: core.Money{Units: 3200}, Percentage: 11.2, Tag: "green"},
			{Category: "Entertainment", Amount: core.Money{Units: 2450}, Percentage: 8.6, Tag: "pink"},
			{Category: "Technology", Amount: core.Money{Units: 2300}, Percentage: 8.1, Tag: "indigo"},
		},
		Trend: []core.TrendPoint{
			{Label: "Week 1", Amount: core.Money{Units: 6200}},
			{Label: "Week 2", Amount: core.Money{Units: 7150}},
			{Label: "Week 3", Amount: core.Money{Units: 8200}},
			{Label: "Week 4", Amount: core.Money{Units: 6900}},
		},
	}
}

func yearBundle() Bundle {
	return Bundle{
		Range:       RangeYear,
		TotalSpent:  core.Money{Units: 325640},
		TotalIncome: core.Money{Units: 520000},
		Transactions: []core.Transaction{
			tx("100", "Shopping", 2800, 2025, time.January, 14, "Flipkart", core.Debit),
			tx("101", "Income", 45000, 2025, time.January, 10, "Salary Deposit", core.Credit),
			tx("102", "Food", 1200, 2025, time.January, 15, "Swiggy", core.Debit),
			tx("103", "Bills", 1600, 2025, time.February, 8, "Internet Bill", core.Debit),
			tx("104", "Income", 45000, 2025, time.February, 10, "Salary Deposit", core.Credit),
			tx("105", "Shopping", 2200, 2025, time.February, 20, "Amazon", core.Debit),
			tx("106", "Food", 1200, 2025, time.March, 20, "Zomato", core.Debit),
			tx("107", "Income", 45000, 2025, time.March, 10, "Salary Deposit", core.Credit),
			tx("108", "Transportation", 1800, 2025, time.March, 25, "Uber", core.Debit),
			tx("109", "Shopping", 3200, 2025, time.April, 15, "Myntra", core.Debit),
			tx("110", "Income", 45000, 2025, time.April, 10, "Salary Deposit", core.Credit),
			tx("111", "Bills", 1500, 2025, time.April, 12, "Electricity Bill", core.Debit),
			tx("112", "Transportation", 2500, 2025, time.May, 18, "Cab Service", core.Debit),
			tx("113", "Income", 45000, 2025, time.May, 10, "Salary Deposit", core.Credit),
			tx("114", "Food", 950, 2025, time.May, 22, "Dominos", core.Debit),
			tx("115", "Entertainment", 1800, 2025, time.June, 25, "Concert", core.Debit),
			tx("116", "Income", 45000, 2025, time.June, 10, "Salary Deposit", core.Credit),
			tx("117", "Shopping", 2100, 2025, time.June, 15, "Flipkart", core.Debit),
			tx("118", "Bills", 2000, 2025, time.July, 12, "Electricity Bill", core.Debit),
			tx("119", "Income", 45000, 2025, time.July, 10, "Salary Deposit", core.Credit),
			tx("120", "Food", 1400, 2025, time.July, 20, "Swiggy", core.Debit),
			tx("121", "Food", 1400, 2025, time.August, 22, "Swiggy", core.Debit),
			tx("122", "Income", 45000, 2025, time.August, 10, "Salary Deposit", core.Credit),
			tx("123", "Entertainment", 1500, 2025, time.August, 28, "Movie Theater", core.Debit),
			tx("124", "Shopping", 2400, 2025, time.September, 14, "Amazon", core.Debit),
			tx("125", "Income", 45000, 2025, time.September, 10, "Salary Deposit", core.Credit),
			tx("126", "Bills", 1800, 2025, time.September, 8, "Internet Bill", core.Debit),
			tx("127", "Bills", 1500, 2025, time.October, 5, "Water Bill", core.Debit),
			tx("128", "Income", 45000, 2025, time.October, 10, "Salary Deposit", core.Credit),
			tx("129", "Food", 1100, 2025, time.October, 20, "Zomato", core.Debit),
			tx("130", "Shopping", 3500, 2025, time.November, 15, "Black Friday Sale", core.Debit),
			tx("131", "Income", 45000, 2025, time.November, 10, "Salary Deposit", core.Credit),
			tx("132", "Transportation", 2200, 2025, time.November, 18, "Uber", core.Debit),
			tx("133", "Food", 15600, 2025, time.December, 28, "Holiday Celebrations", core.Debit),
			tx("134", "Bills", 68000, 2025, time.December, 1, "Annual Bills", core.Debit),
			tx("135", "Income", 45000, 2025, time.December, 10, "Salary Deposit", core.Credit),
		},
		Categories: []core.CategoryAggregate{
			{Category: "Shopping", Amount: core.Money{Units: 98600}, Percentage: 30.3, Tag: "purple"},
			{Category: "Food & Dining", Amount: core.Money{Units: 72400}, Percentage: 22.2, Tag: "orange"},
			{Category: "Bills & Utilities", Amount: core.Money{Units: 68500}, Percentage: 21.0, Tag: "blue"},
			{Category: "Transportation", Amount: core.Money{Units: 36200}, Percentage: 11.1, Tag: "green"},
			{Category: "Entertainment", Amount: core.Money{Units: 28500}, Percentage: 8.7, Tag: "pink"},
			{Category: "Technology", Amount: core.Money{Units: 21440}, Percentage: 6.6, Tag: "indigo"},
		},
		Trend: []core.TrendPoint{
			{Label: "Jan", Amount: core.Money{Units: 28450}},
			{Label: "Feb", Amount: core.Money{Units: 32000}},
			{Label: "Mar", Amount: core.Money{Units: 28000}},
			{Label: "Apr", Amount: core.Money{Units: 31000}},
			{Label: "May", Amount: core.Money{Units: 29500}},
			{Label: "Jun", Amount: core.Money{Units: 32500}},
			{Label: "Jul", Amount: core.Money{Units: 30200}},
			{Label: "Aug", Amount: core.Money{Units: 29800}},
			{Label: "Sep", Amount: core.Money{Units: 28000}},
			{Label: "Oct", Amount: core.Money{Units: 31000}},
			{Label: "Nov", Amount: core.Money{Units: 29500}},
			{Label: "Dec", Amount: core.Money{Units: 32500}},
		},
	}
}
