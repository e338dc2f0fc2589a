package http

import (
	"net/http"

	"tddbank/internal/auth"
	"tddbank/internal/insights"
	"tddbank/internal/log"
)

type dashboardData struct {
	User        string
	ShowBalance bool
	Balance     string
	MonthSpent  string
	MonthIncome string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// The root pattern catches everything; anything but "/" is a miss.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := auth.UserFromContext(r.Context())

	profile, err := s.accounts.LoadProfile(r.Context(), user)
	if err != nil {
		s.logger.Error("Failed to load profile for dashboard",
			log.FieldError, err, log.FieldUserName, user)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view, err := s.insightsView(insights.RangeMonth, insights.Filter{})
	if err != nil {
		s.logger.Error("Failed to derive dashboard summary", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "dashboard", dashboardData{
		User:        user,
		ShowBalance: profile.Privacy.ShowBalanceOnHome,
		Balance:     formatINR(view.NetSavings.Units),
		MonthSpent:  formatINR(view.TotalSpent.Units),
		MonthIncome: formatINR(view.TotalIncome.Units),
	})
}
