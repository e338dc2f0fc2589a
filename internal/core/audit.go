package core

import "time"

const (
	AuditSignIn         AuditKind = "sign_in"
	AuditSignInDenied   AuditKind = "sign_in_denied"
	AuditSignOut        AuditKind = "sign_out"
	AuditProfileUpdated AuditKind = "profile_updated"
	AuditTwoFAToggled   AuditKind = "twofa_toggled"
	AuditDeactivated    AuditKind = "account_deactivated"
)

// AuditKind classifies an audit trail entry.
type AuditKind string

// AuditEntry records one security-relevant user action.
type AuditEntry struct {
	ID     string
	Kind   AuditKind
	Actor  string // email or display name, whatever the action knew
	Detail string
	At     time.Time
}

func (k AuditKind) Validate() error {
	switch k {
	case AuditSignIn, AuditSignInDenied, AuditSignOut,
		AuditProfileUpdated, AuditTwoFAToggled, AuditDeactivated:
		return nil
	default:
		return ErrInvalidKind
	}
}
