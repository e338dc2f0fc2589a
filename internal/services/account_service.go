package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tddbank/internal/amqp"
	"tddbank/internal/backend"
	"tddbank/internal/core"
)

// AuditPublisher publishes audit trail events. *amqp.Client satisfies
// it; tests substitute a recorder.
type AuditPublisher interface {
	PublishAuditEvent(ctx context.Context, msg *amqp.AuditEventMessage) error
}

// ProfileUpdate carries the editable profile fields from the settings form.
type ProfileUpdate struct {
	FullName string
	Email    string
	Mobile   string
	Address  string
}

// AccountService orchestrates profile and account operations across the
// key-value backend and the audit event stream. Audit publishing is
// best-effort: a broker outage never fails the user action.
type AccountService struct {
	backend backend.Backend
	audit   AuditPublisher
}

func NewAccountService(b backend.Backend, audit AuditPublisher) *AccountService {
	return &AccountService{
		backend: b,
		audit:   audit,
	}
}

// LoadProfile returns the stored profile, creating and persisting the
// default one when none exists yet. displayName seeds the default.
func (s *AccountService) LoadProfile(ctx context.Context, displayName string) (core.Profile, error) {
	p, ok, err := s.backend.ReadProfile(ctx)
	if err != nil {
		return core.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if ok {
		return p, nil
	}

	p = core.DefaultProfile(displayName)
	if err := s.backend.WriteProfile(ctx, p); err != nil {
		return core.Profile{}, fmt.Errorf("write default profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies the settings form edits and records the change
// in the audit trail.
func (s *AccountService) UpdateProfile(ctx context.Context, actor string, update ProfileUpdate) (core.Profile, error) {
	p, err := s.LoadProfile(ctx, actor)
	if err != nil {
		return core.Profile{}, err
	}

	p.FullName = update.FullName
	p.Email = update.Email
	p.Mobile = update.Mobile
	p.Address = update.Address

	if err := p.Validate(); err != nil {
		return core.Profile{}, err
	}
	if err := s.backend.WriteProfile(ctx, p); err != nil {
		return core.Profile{}, fmt.Errorf("write profile: %w", err)
	}

	s.publishAudit(ctx, core.AuditProfileUpdated, actor, "updated personal details")
	return p, nil
}

// Toggle2FA flips the two-factor flag and returns the new state.
func (s *AccountService) Toggle2FA(ctx context.Context, actor string) (bool, error) {
	p, err := s.LoadProfile(ctx, actor)
	if err != nil {
		return false, err
	}

	p.Is2FAEnabled = !p.Is2FAEnabled
	if err := s.backend.WriteProfile(ctx, p); err != nil {
		return false, fmt.Errorf("write profile: %w", err)
	}

	detail := "two-factor authentication turned off"
	if p.Is2FAEnabled {
		detail = "two-factor authentication turned on"
	}
	s.publishAudit(ctx, core.AuditTwoFAToggled, actor, detail)
	return p.Is2FAEnabled, nil
}

// Privacy setting keys accepted by TogglePrivacySetting.
const (
	PrivacyMarketingEmails   = "marketingEmails"
	PrivacyShareData         = "shareData"
	PrivacyShowBalanceOnHome = "showBalanceOnHome"
)

// ErrUnknownPrivacyKey is returned when a toggle names no known setting.
var ErrUnknownPrivacyKey = errors.New("unknown privacy setting")

// TogglePrivacySetting flips one privacy toggle and returns the updated
// settings.
func (s *AccountService) TogglePrivacySetting(ctx context.Context, actor, key string) (core.PrivacySettings, error) {
	p, err := s.LoadProfile(ctx, actor)
	if err != nil {
		return core.PrivacySettings{}, err
	}

	switch key {
	case PrivacyMarketingEmails:
		p.Privacy.MarketingEmails = !p.Privacy.MarketingEmails
	case PrivacyShareData:
		p.Privacy.ShareData = !p.Privacy.ShareData
	case PrivacyShowBalanceOnHome:
		p.Privacy.ShowBalanceOnHome = !p.Privacy.ShowBalanceOnHome
	default:
		return core.PrivacySettings{}, fmt.Errorf("%w: %s", ErrUnknownPrivacyKey, key)
	}

	if err := s.backend.WriteProfile(ctx, p); err != nil {
		return core.PrivacySettings{}, fmt.Errorf("write profile: %w", err)
	}
	return p.Privacy, nil
}

// Deactivate wipes every stored entry. The audit event is published
// before the wipe so the deactivation itself stays traceable.
func (s *AccountService) Deactivate(ctx context.Context, actor string) error {
	s.publishAudit(ctx, core.AuditDeactivated, actor, "account deactivated, stored data cleared")

	if err := s.backend.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe stored data: %w", err)
	}
	return nil
}

// RecordSignIn persists the signed-in user's profile fixture and emits
// the sign-in audit event.
func (s *AccountService) RecordSignIn(ctx context.Context, cred core.Credential) error {
	// A successful sign-in seeds the profile entry. The seed predates
	// the settings page defaults and is kept as authored.
	profile := core.Profile{
		FullName:     cred.DisplayName,
		Email:        cred.Email,
		Mobile:       "+912441139***",
		Address:      "21 Baker Street, Lodon, UK ",
		Is2FAEnabled: true,
		Privacy:      core.DefaultPrivacySettings(),
	}
	if err := s.backend.WriteProfile(ctx, profile); err != nil {
		return fmt.Errorf("write sign-in profile: %w", err)
	}

	s.publishAudit(ctx, core.AuditSignIn, cred.Email, "signed in as "+cred.DisplayName)
	return nil
}

// RecordSignInDenied emits the audit event for a rejected attempt.
func (s *AccountService) RecordSignInDenied(ctx context.Context, email string) {
	s.publishAudit(ctx, core.AuditSignInDenied, email, "credentials not in authorized set")
}

// RecordSignOut emits the sign-out audit event.
func (s *AccountService) RecordSignOut(ctx context.Context, actor string) {
	s.publishAudit(ctx, core.AuditSignOut, actor, "")
}

func (s *AccountService) publishAudit(ctx context.Context, kind core.AuditKind, actor, detail string) {
	if s.audit == nil {
		slog.WarnContext(ctx, "Audit publisher not available, skipping event", "kind", kind)
		return
	}

	msg := amqp.NewAuditEventMessage(kind, actor, detail)
	if err := s.audit.PublishAuditEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish audit event",
			"kind", kind, "event_id", msg.EventID, "error", err)
		// Don't fail the request - the user action already succeeded.
	}
}
