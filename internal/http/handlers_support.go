package http

import (
	"net/http"

	"tddbank/internal/auth"
	"tddbank/internal/support"
)

type supportData struct {
	User   string
	Query  string
	FAQs   []support.FAQ
	Team   []support.TeamMember
	Branch support.Branch
}

func (s *Server) handleSupport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.render(w, r, "support", supportData{
		User:   auth.UserFromContext(r.Context()),
		FAQs:   support.FAQs(),
		Team:   support.Team(),
		Branch: support.MainBranch(),
	})
}

// handleFAQSearch serves the FAQ list fragment as the visitor types.
func (s *Server) handleFAQSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	s.render(w, r, "faq_list", supportData{
		Query: query,
		FAQs:  support.SearchFAQs(query),
	})
}
