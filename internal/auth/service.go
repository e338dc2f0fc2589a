package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"tddbank/internal/log"
	"tddbank/internal/store"
)

const (
	sessionName = "tddbank-session"

	keyUserName      = "userName"
	keyAuthenticated = "authenticated"
)

// ErrEmptyName is returned by Login when the display name is empty.
var ErrEmptyName = errors.New("display name cannot be empty")

// Service owns the session state. The cookie session is authoritative
// for authentication decisions; the key-value store mirrors the
// userName and isLoggedIn entries so other components can read them.
type Service struct {
	cookies sessions.Store
	kv      store.SessionStore
	logger  *log.Logger
}

// NewService creates the session service. The secret signs session
// cookies; the key-value store receives mirrored writes.
func NewService(secret string, kv store.SessionStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	cookieStore := sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // session cookie, cleared when the browser closes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Service{
		cookies: cookieStore,
		kv:      kv,
		logger:  logger.WithComponent(log.ComponentAuth),
	}
}

// Login records name as the signed-in user. No validation beyond
// non-emptiness happens here; credential checking is the caller's job.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie decodes to an error plus a fresh
		// session; the fresh session is still usable.
		s.logger.Warn("discarding undecodable session cookie", log.FieldError, err)
	}
	session.Values[keyUserName] = name
	session.Values[keyAuthenticated] = true
	if err := session.Save(r, w); err != nil {
		return err
	}

	ctx := r.Context()
	if err := s.kv.WriteUserName(ctx, name); err != nil {
		return err
	}
	if err := s.kv.WriteLoggedInFlag(ctx, true); err != nil {
		return err
	}

	s.logger.Info("user signed in", log.FieldOperation, log.OpSignIn, log.FieldUserName, name)
	return nil
}

// Logout clears the session and the mirrored store entries.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.cookies.Get(r, sessionName)
	name, _ := session.Values[keyUserName].(string)

	delete(session.Values, keyUserName)
	session.Values[keyAuthenticated] = false
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return err
	}

	ctx := r.Context()
	if err := s.kv.ClearUserName(ctx); err != nil {
		return err
	}
	if err := s.kv.WriteLoggedInFlag(ctx, false); err != nil {
		return err
	}

	s.logger.Info("user signed out", log.FieldOperation, log.OpSignOut, log.FieldUserName, name)
	return nil
}

// CurrentUser returns the signed-in display name, or "" when nobody is
// signed in. The cookie session is authoritative; when it is absent or
// stale, the persisted userName entry serves as a fallback so returning
// users are recognized. Logout and deactivation clear that entry, so
// the fallback never resurrects an ended session.
func (s *Service) CurrentUser(r *http.Request) string {
	if name := s.sessionUser(r); name != "" {
		return name
	}
	if stored, err := s.kv.ReadUserName(r.Context()); err == nil && stored != "" {
		return stored
	}
	return ""
}

// sessionUser reads the display name from the cookie session only.
// Authentication is derived from the name being present.
func (s *Service) sessionUser(r *http.Request) string {
	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		return ""
	}
	authenticated, _ := session.Values[keyAuthenticated].(bool)
	if !authenticated {
		return ""
	}
	name, _ := session.Values[keyUserName].(string)
	return name
}

// restoreSession re-issues the session cookie for a user recognized
// through the persisted userName fallback. Best effort: a failed save
// just means the fallback runs again on the next request.
func (s *Service) restoreSession(w http.ResponseWriter, r *http.Request, name string) {
	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		// A stale or corrupt cookie decodes into a fresh session.
		session, _ = s.cookies.New(r, sessionName)
		if session == nil {
			return
		}
	}
	session.Values[keyUserName] = name
	session.Values[keyAuthenticated] = true
	if err := session.Save(r, w); err != nil {
		s.logger.Warn("failed to restore session cookie",
			log.FieldError, err, log.FieldUserName, name)
		return
	}
	s.logger.Info("session restored from persisted user name",
		log.FieldOperation, log.OpSignIn, log.FieldUserName, name)
}

// IsAuthenticated reports whether a user is signed in.
func (s *Service) IsAuthenticated(r *http.Request) bool {
	return s.CurrentUser(r) != ""
}
