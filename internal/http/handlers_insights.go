package http

import (
	"fmt"
	"net/http"
	"time"

	"tddbank/internal/auth"
	"tddbank/internal/core"
	"tddbank/internal/insights"
	"tddbank/internal/log"
)

// insightsData is the template model for the insights page and its HTMX
// partial. Amounts arrive preformatted; templates never touch Money.
type insightsData struct {
	User   string
	Range  insights.Range
	Ranges []insights.Range
	Month  int
	Year   int

	TotalSpent  string
	TotalIncome string
	NetSavings  string
	SavingsRate string
	Filtered    bool

	Recent     []transactionRow
	Categories []categoryRow
	Trend      []trendBar
	Months     []monthOption
	Years      []int
}

type transactionRow struct {
	Merchant string
	Category string
	Date     string
	Amount   string
	Credit   bool
}

type categoryRow struct {
	Category string
	Amount   string
	Percent  string
	Tag      string
}

type trendBar struct {
	Label   string
	Amount  string
	Percent int
}

type monthOption struct {
	Value    int
	Label    string
	Selected bool
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderInsights(w, r, "insights")
}

// handleInsightsPartial serves the HTMX fragment swapped in when the
// range or filter selection changes.
func (s *Server) handleInsightsPartial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderInsights(w, r, "insights_overview")
}

func (s *Server) renderInsights(w http.ResponseWriter, r *http.Request, tmpl string) {
	rng, filter := parseRangeParams(r.URL.Query())

	view, err := s.insightsView(rng, filter)
	if err != nil {
		s.logger.Error("Failed to derive insights view",
			log.FieldError, err, log.FieldRange, string(rng))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, tmpl, s.buildInsightsData(auth.UserFromContext(r.Context()), view))
}

// insightsView memoizes derived views per range+filter. The fixtures are
// immutable so a hit is always current.
func (s *Server) insightsView(rng insights.Range, filter insights.Filter) (insights.View, error) {
	key := fmt.Sprintf("%s:%d:%d", rng, int(filter.Month), filter.Year)
	if view, ok := s.viewCache.Get(key); ok {
		return view, nil
	}

	bundle, err := insights.BundleFor(rng)
	if err != nil {
		return insights.View{}, err
	}
	view := insights.Derive(bundle, filter)
	s.viewCache.Set(key, view)
	return view, nil
}

func (s *Server) buildInsightsData(user string, view insights.View) insightsData {
	data := insightsData{
		User:        user,
		Range:       view.Range,
		Ranges:      insights.Ranges(),
		Month:       int(view.Filter.Month),
		Year:        view.Filter.Year,
		TotalSpent:  formatINR(view.TotalSpent.Units),
		TotalIncome: formatINR(view.TotalIncome.Units),
		NetSavings:  formatINR(view.NetSavings.Units),
		SavingsRate: fmt.Sprintf("%.1f%%", view.SavingsRate),
		Filtered:    view.Filter.Active(),
		Years:       filterYears(),
	}

	for _, tx := range view.RecentTransactions {
		credit := tx.Kind == core.Credit
		data.Recent = append(data.Recent, transactionRow{
			Merchant: tx.Merchant,
			Category: tx.Category,
			Date:     tx.Date.Format("02 Jan 2006"),
			Amount:   formatSignedINR(tx.Amount.Units, credit),
			Credit:   credit,
		})
	}

	for _, cat := range view.Categories {
		data.Categories = append(data.Categories, categoryRow{
			Category: cat.Category,
			Amount:   formatINR(cat.Amount.Units),
			Percent:  fmt.Sprintf("%.0f%%", cat.Percentage),
			Tag:      cat.Tag,
		})
	}

	max := insights.MaxTrendAmount(view.Trend).Units
	for _, point := range view.Trend {
		percent := 0
		if max > 0 {
			percent = int(point.Amount.Units * 100 / max)
		}
		data.Trend = append(data.Trend, trendBar{
			Label:   point.Label,
			Amount:  formatINR(point.Amount.Units),
			Percent: percent,
		})
	}

	for m := time.January; m <= time.December; m++ {
		data.Months = append(data.Months, monthOption{
			Value:    int(m),
			Label:    m.String(),
			Selected: view.Filter.Month == m,
		})
	}

	return data
}

// filterYears lists the years selectable in the filter dropdown, covering
// every year the fixture bundles span.
func filterYears() []int {
	return []int{2024, 2025, 2026}
}
