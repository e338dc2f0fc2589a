package store

import (
	"context"

	"tddbank/internal/core"
)

// Ports for outbound adapters. The session and profile entries mirror the
// three persisted key-value entries (userName, bankUser, isLoggedIn); a
// single active session is assumed, so no user keying is needed.
type (
	SessionStore interface {
		// ReadUserName returns the persisted display name, or "" when absent.
		ReadUserName(ctx context.Context) (string, error)
		WriteUserName(ctx context.Context, name string) error
		ClearUserName(ctx context.Context) error
		// WriteLoggedInFlag maintains the advisory isLoggedIn entry. The flag
		// is never consulted for authentication decisions.
		WriteLoggedInFlag(ctx context.Context, loggedIn bool) error
	}

	ProfileStore interface {
		// ReadProfile returns the stored profile; ok is false when none exists.
		ReadProfile(ctx context.Context) (p core.Profile, ok bool, err error)
		WriteProfile(ctx context.Context, p core.Profile) error
	}

	// AuditLog appends entries to the audit trail.
	AuditLog interface {
		AppendAudit(ctx context.Context, e core.AuditEntry) (ref string, err error)
	}

	// Wiper clears every stored entry. Used by account deactivation.
	Wiper interface {
		Wipe(ctx context.Context) error
	}
)
