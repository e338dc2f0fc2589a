package http

import (
	"errors"
	"net/http"

	"tddbank/internal/auth"
	"tddbank/internal/core"
	"tddbank/internal/log"
	"tddbank/internal/services"
)

type securityData struct {
	User    string
	Privacy core.PrivacySettings
}

func (s *Server) handleSecurity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := auth.UserFromContext(r.Context())
	profile, err := s.accounts.LoadProfile(r.Context(), user)
	if err != nil {
		s.logger.Error("Failed to load privacy settings",
			log.FieldError, err, log.FieldUserName, user)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "security", securityData{User: user, Privacy: profile.Privacy})
}

// handleSecurityPrivacy flips one privacy toggle. The form names the
// setting; the new state is whatever the old one was not.
func (s *Server) handleSecurityPrivacy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("invalid form").Write(w)
		return
	}

	user := auth.UserFromContext(r.Context())
	key := r.PostFormValue("setting")

	privacy, err := s.accounts.TogglePrivacySetting(r.Context(), user, key)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPrivacyKey) {
			BadRequestError("unknown privacy setting").Write(w)
			return
		}
		s.logger.Error("Failed to toggle privacy setting",
			log.FieldError, err, log.FieldUserName, user, log.FieldStoreKey, key)
		InternalServerError("failed to update setting").Write(w)
		return
	}

	enabled := false
	switch key {
	case services.PrivacyMarketingEmails:
		enabled = privacy.MarketingEmails
	case services.PrivacyShareData:
		enabled = privacy.ShareData
	case services.PrivacyShowBalanceOnHome:
		enabled = privacy.ShowBalanceOnHome
	}

	NewHTMXResponse().
		TriggerPrivacyToggled(key, enabled).
		TriggerSuccessNotification("Privacy preference saved.").
		Write(w)
}

// handleSecurityDeactivate wipes the stored account data and ends the
// session. The audit trail survives the wipe.
func (s *Server) handleSecurityDeactivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	user := auth.UserFromContext(r.Context())
	if err := s.accounts.Deactivate(r.Context(), user); err != nil {
		s.logger.Error("Failed to deactivate account",
			log.FieldError, err, log.FieldUserName, user)
		InternalServerError("failed to deactivate account").Write(w)
		return
	}
	if err := s.sessions.Logout(w, r); err != nil {
		s.logger.Error("Failed to clear session after deactivation", log.FieldError, err)
	}

	if r.Header.Get("HX-Request") == "true" {
		NewHTMXResponse().Redirect("/sign-in").Write(w)
		return
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}
