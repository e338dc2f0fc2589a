package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"tddbank/internal/auth"
	"tddbank/internal/core"
	"tddbank/internal/log"
)

const (
	underageMessage   = "Access Denied: You must be 18 years or older to open a TDD Bank account."
	incompleteMessage = "Please complete all fields to proceed with your application."
)

type signInPage struct {
	Email       string
	FieldErrors auth.FieldErrors
	Error       string
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "sign_in", signInPage{})
	case http.MethodPost:
		s.processSignIn(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) processSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	// Field validation blocks the credential check entirely.
	if fieldErrs := auth.ValidateSignInForm(email, password); len(fieldErrs) > 0 {
		s.render(w, r, "sign_in", signInPage{Email: email, FieldErrors: fieldErrs})
		return
	}

	cred, err := s.checker.Check(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrAccessDenied) {
			s.accounts.RecordSignInDenied(r.Context(), email)
			s.logger.Info("Sign-in denied",
				log.FieldOperation, log.OpSignIn, log.FieldEmail, email)
			s.render(w, r, "sign_in", signInPage{Email: email, Error: err.Error()})
			return
		}
		// Context cancellation means the client went away mid-check.
		s.logger.Warn("Sign-in check aborted", log.FieldError, err)
		return
	}

	if err := s.accounts.RecordSignIn(r.Context(), cred); err != nil {
		s.logger.Error("Failed to seed signed-in profile", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Login(w, r, cred.DisplayName); err != nil {
		s.logger.Error("Failed to establish session", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type signUpPage struct {
	Form  map[string]string
	Error string
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "sign_up", signUpPage{Form: map[string]string{}})
	case http.MethodPost:
		s.processSignUp(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// processSignUp implements the mock account-opening flow: applicants must
// be 18 or older and every field is required. No real account is created;
// the submitted details just become the stored profile.
func (s *Server) processSignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := map[string]string{
		"name":    sanitizeInput(r.PostFormValue("name")),
		"email":   strings.TrimSpace(r.PostFormValue("email")),
		"dob":     strings.TrimSpace(r.PostFormValue("dob")),
		"address": sanitizeInput(r.PostFormValue("address")),
		"state":   sanitizeInput(r.PostFormValue("state")),
		"pin":     strings.TrimSpace(r.PostFormValue("pin")),
	}
	password := r.PostFormValue("password")

	if form["dob"] == "" {
		s.render(w, r, "sign_up", signUpPage{Form: form, Error: "Please select your Date of Birth."})
		return
	}
	dob, err := time.Parse("2006-01-02", form["dob"])
	if err != nil {
		s.render(w, r, "sign_up", signUpPage{Form: form, Error: "Please select your Date of Birth."})
		return
	}
	if ageAt(dob, time.Now()) < 18 {
		s.render(w, r, "sign_up", signUpPage{Form: form, Error: underageMessage})
		return
	}

	for _, v := range []string{form["name"], form["email"], password, form["address"], form["state"], form["pin"]} {
		if v == "" {
			s.render(w, r, "sign_up", signUpPage{Form: form, Error: incompleteMessage})
			return
		}
	}

	profile := core.DefaultProfile(form["name"])
	profile.Email = form["email"]
	profile.Address = form["address"] + ", " + form["state"] + " " + form["pin"]
	if err := s.backend.WriteProfile(r.Context(), profile); err != nil {
		s.logger.Error("Failed to store applicant profile", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// ageAt computes whole years between birth and now, counting a year only
// once the birthday has passed.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actor := auth.UserFromContext(r.Context())
	s.accounts.RecordSignOut(r.Context(), actor)
	if err := s.sessions.Logout(w, r); err != nil {
		s.logger.Error("Failed to clear session", log.FieldError, err)
	}

	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}
