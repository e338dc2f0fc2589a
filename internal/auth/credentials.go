package auth

import (
	"context"
	"errors"
	"time"

	"tddbank/internal/core"
)

// ErrAccessDenied is returned when a credential pair is not in the
// authorized set. The message is shown to the user as-is.
var ErrAccessDenied = errors.New("Access Denied: This account is not part of the authorized banking group.")

// AuthorizedCredentials is the fixed set of accounts allowed to sign in.
// Matching is case-sensitive exact equality on both fields.
var AuthorizedCredentials = []core.Credential{
	{Email: "admin@tddbank.com", Password: "123456", DisplayName: "Admin User"},
	{Email: "user@tddbank.com", Password: "password", DisplayName: "Test User"},
	{Email: "manager@tddbank.com", Password: "bankmanager", DisplayName: "Operations Manager"},
}

// FieldErrors maps input field names to validation messages. An empty
// map means the input passed validation.
type FieldErrors map[string]string

// ValidateSignInForm checks the submitted fields before any match
// attempt. A non-empty result blocks the credential check entirely.
func ValidateSignInForm(email, password string) FieldErrors {
	errs := FieldErrors{}
	if email == "" {
		errs["email"] = "Email is required"
	} else if !core.ValidEmail(email) {
		errs["email"] = "Email is invalid"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// Checker matches submitted credentials against a fixed authorized set.
// The latency parameter emulates a network round trip; it is applied on
// every match attempt, success or failure, so timing does not leak
// which of the two occurred.
type Checker struct {
	credentials []core.Credential
	latency     time.Duration
}

// NewChecker creates a Checker over the given credential set. A zero
// latency disables the artificial delay, which is what tests want.
func NewChecker(credentials []core.Credential, latency time.Duration) *Checker {
	return &Checker{
		credentials: credentials,
		latency:     latency,
	}
}

// Check performs the case-sensitive exact match. It returns the matched
// credential or ErrAccessDenied. The context cancels the simulated
// latency; a cancelled check returns the context error and must be
// treated as a no-op by callers.
func (c *Checker) Check(ctx context.Context, email, password string) (core.Credential, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return core.Credential{}, ctx.Err()
		}
	}

	for _, cred := range c.credentials {
		if cred.Email == email && cred.Password == password {
			return cred, nil
		}
	}
	return core.Credential{}, ErrAccessDenied
}
