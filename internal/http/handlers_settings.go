package http

import (
	"bytes"
	"errors"
	"net/http"

	"tddbank/internal/auth"
	"tddbank/internal/core"
	"tddbank/internal/log"
	"tddbank/internal/services"
)

type settingsData struct {
	User    string
	Profile core.Profile
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := auth.UserFromContext(r.Context())
	profile, err := s.accounts.LoadProfile(r.Context(), user)
	if err != nil {
		s.logger.Error("Failed to load profile",
			log.FieldError, err, log.FieldUserName, user)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "settings", settingsData{User: user, Profile: profile})
}

// handleSettingsProfile saves profile edits submitted from the settings
// page and swaps the updated form back in.
func (s *Server) handleSettingsProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("invalid form").Write(w)
		return
	}

	user := auth.UserFromContext(r.Context())
	update := services.ProfileUpdate{
		FullName: sanitizeInput(r.PostFormValue("fullName")),
		Email:    sanitizeInput(r.PostFormValue("email")),
		Mobile:   sanitizeInput(r.PostFormValue("mobile")),
		Address:  sanitizeInput(r.PostFormValue("address")),
	}

	profile, err := s.accounts.UpdateProfile(r.Context(), user, update)
	if err != nil {
		if errors.Is(err, core.ErrInvalidEmail) || errors.Is(err, core.ErrEmptyFullName) {
			UnprocessableEntityError(err.Error()).Write(w)
			return
		}
		s.logger.Error("Failed to update profile",
			log.FieldError, err, log.FieldUserName, user)
		InternalServerError("failed to save profile").Write(w)
		return
	}

	fragment, err := s.renderFragment("profile_form", settingsData{User: user, Profile: profile})
	if err != nil {
		s.logger.Error("Failed to render profile fragment", log.FieldError, err)
		InternalServerError("failed to render").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerProfileUpdated().
		TriggerSuccessNotification("Profile updated successfully.").
		BodyHTML(fragment).
		Write(w)
}

func (s *Server) handleSettings2FA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	user := auth.UserFromContext(r.Context())
	enabled, err := s.accounts.Toggle2FA(r.Context(), user)
	if err != nil {
		s.logger.Error("Failed to toggle 2FA",
			log.FieldError, err, log.FieldUserName, user)
		InternalServerError("failed to update 2FA").Write(w)
		return
	}

	message := "Two-factor authentication disabled."
	if enabled {
		message = "Two-factor authentication enabled."
	}

	NewHTMXResponse().
		TriggerTwoFAToggled(enabled).
		TriggerSuccessNotification(message).
		Write(w)
}

// renderFragment executes a template into a string for embedding in an
// HTMX response body.
func (s *Server) renderFragment(name string, data interface{}) (string, error) {
	if s.templates == nil {
		return "", errors.New("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
