package services

import (
	"context"
	"testing"

	"tddbank/internal/amqp"
	"tddbank/internal/core"
	"tddbank/internal/store/memory"
)

type auditRecorder struct {
	events []*amqp.AuditEventMessage
}

func (r *auditRecorder) PublishAuditEvent(_ context.Context, msg *amqp.AuditEventMessage) error {
	r.events = append(r.events, msg)
	return nil
}

func (r *auditRecorder) kinds() []string {
	kinds := make([]string, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func newTestAccountService() (*AccountService, *memory.Store, *auditRecorder) {
	st := memory.New()
	rec := &auditRecorder{}
	return NewAccountService(st, rec), st, rec
}

func TestLoadProfileCreatesDefault(t *testing.T) {
	svc, st, _ := newTestAccountService()
	ctx := context.Background()

	p, err := svc.LoadProfile(ctx, "Admin User")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.FullName != "Admin User" {
		t.Fatalf("full name = %q, want %q", p.FullName, "Admin User")
	}
	if p.Email != "user@example.com" {
		t.Fatalf("default email = %q, want user@example.com", p.Email)
	}
	if p.Is2FAEnabled {
		t.Fatal("default profile must have 2FA disabled")
	}

	// The default must have been persisted, not just returned.
	stored, ok, err := st.ReadProfile(ctx)
	if err != nil || !ok {
		t.Fatalf("ReadProfile after default creation: ok=%v err=%v", ok, err)
	}
	if stored.FullName != "Admin User" {
		t.Fatalf("stored full name = %q, want %q", stored.FullName, "Admin User")
	}
}

func TestLoadProfileEmptyNameFallsBack(t *testing.T) {
	svc, _, _ := newTestAccountService()

	p, err := svc.LoadProfile(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.FullName != "User" {
		t.Fatalf("full name = %q, want fallback %q", p.FullName, "User")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, rec := newTestAccountService()
	ctx := context.Background()

	p, err := svc.UpdateProfile(ctx, "Test User", ProfileUpdate{
		FullName: "Renamed User",
		Email:    "renamed@tddbank.com",
		Mobile:   "+91 11111-22222",
		Address:  "42 New Street",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if p.FullName != "Renamed User" || p.Email != "renamed@tddbank.com" {
		t.Fatalf("updated profile = %+v", p)
	}

	kinds := rec.kinds()
	if len(kinds) != 1 || kinds[0] != string(core.AuditProfileUpdated) {
		t.Fatalf("audit events = %v, want one profile_updated", kinds)
	}
}

func TestUpdateProfileRejectsInvalidInput(t *testing.T) {
	svc, _, rec := newTestAccountService()
	ctx := context.Background()

	tests := []struct {
		name   string
		update ProfileUpdate
	}{
		{"empty name", ProfileUpdate{FullName: "", Email: "a@b.com"}},
		{"bad email", ProfileUpdate{FullName: "Someone", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateProfile(ctx, "Test User", tt.update); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	for _, k := range rec.kinds() {
		if k == string(core.AuditProfileUpdated) {
			t.Fatal("rejected update must not emit profile_updated")
		}
	}
}

func TestToggle2FA(t *testing.T) {
	svc, _, rec := newTestAccountService()
	ctx := context.Background()

	enabled, err := svc.Toggle2FA(ctx, "Test User")
	if err != nil {
		t.Fatalf("Toggle2FA failed: %v", err)
	}
	if !enabled {
		t.Fatal("first toggle from default must enable 2FA")
	}

	enabled, err = svc.Toggle2FA(ctx, "Test User")
	if err != nil {
		t.Fatalf("Toggle2FA failed: %v", err)
	}
	if enabled {
		t.Fatal("second toggle must disable 2FA")
	}

	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != string(core.AuditTwoFAToggled) {
		t.Fatalf("audit events = %v, want two twofa_toggled", kinds)
	}
}

func TestTogglePrivacySetting(t *testing.T) {
	svc, _, _ := newTestAccountService()
	ctx := context.Background()

	// Defaults: marketing off, sharing on, balance shown.
	privacy, err := svc.TogglePrivacySetting(ctx, "Test User", PrivacyMarketingEmails)
	if err != nil {
		t.Fatalf("TogglePrivacySetting failed: %v", err)
	}
	if !privacy.MarketingEmails {
		t.Fatal("marketing emails should be on after toggle")
	}
	if !privacy.ShareData || !privacy.ShowBalanceOnHome {
		t.Fatalf("unrelated settings changed: %+v", privacy)
	}

	privacy, err = svc.TogglePrivacySetting(ctx, "Test User", PrivacyShareData)
	if err != nil {
		t.Fatalf("TogglePrivacySetting failed: %v", err)
	}
	if privacy.ShareData {
		t.Fatal("share data should be off after toggle")
	}

	if _, err := svc.TogglePrivacySetting(ctx, "Test User", "unknownKey"); err == nil {
		t.Fatal("expected error for unknown setting key")
	}
}

func TestDeactivateWipesAndAudits(t *testing.T) {
	svc, st, rec := newTestAccountService()
	ctx := context.Background()

	if err := st.WriteUserName(ctx, "Test User"); err != nil {
		t.Fatalf("WriteUserName failed: %v", err)
	}
	if _, err := svc.LoadProfile(ctx, "Test User"); err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if err := svc.Deactivate(ctx, "Test User"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	name, err := st.ReadUserName(ctx)
	if err != nil {
		t.Fatalf("ReadUserName failed: %v", err)
	}
	if name != "" {
		t.Fatalf("user name survived wipe: %q", name)
	}
	if _, ok, _ := st.ReadProfile(ctx); ok {
		t.Fatal("profile survived wipe")
	}

	kinds := rec.kinds()
	if len(kinds) == 0 || kinds[len(kinds)-1] != string(core.AuditDeactivated) {
		t.Fatalf("audit events = %v, want trailing account_deactivated", kinds)
	}
}

func TestRecordSignInSeedsProfile(t *testing.T) {
	svc, st, rec := newTestAccountService()
	ctx := context.Background()

	cred := core.Credential{Email: "admin@tddbank.com", Password: "123456", DisplayName: "Admin User"}
	if err := svc.RecordSignIn(ctx, cred); err != nil {
		t.Fatalf("RecordSignIn failed: %v", err)
	}

	p, ok, err := st.ReadProfile(ctx)
	if err != nil || !ok {
		t.Fatalf("ReadProfile after sign-in: ok=%v err=%v", ok, err)
	}
	if p.FullName != "Admin User" || p.Email != "admin@tddbank.com" {
		t.Fatalf("seeded profile = %+v", p)
	}
	if !p.Is2FAEnabled {
		t.Fatal("sign-in seed enables 2FA")
	}

	kinds := rec.kinds()
	if len(kinds) != 1 || kinds[0] != string(core.AuditSignIn) {
		t.Fatalf("audit events = %v, want one sign_in", kinds)
	}
}

func TestAuditPublishIsBestEffort(t *testing.T) {
	// A nil publisher must not break any operation.
	svc := NewAccountService(memory.New(), nil)
	ctx := context.Background()

	if err := svc.RecordSignIn(ctx, core.Credential{Email: "a@b.com", DisplayName: "A"}); err != nil {
		t.Fatalf("RecordSignIn with nil publisher failed: %v", err)
	}
	svc.RecordSignInDenied(ctx, "x@y.com")
	svc.RecordSignOut(ctx, "A")

	if _, err := svc.Toggle2FA(ctx, "A"); err != nil {
		t.Fatalf("Toggle2FA with nil publisher failed: %v", err)
	}
}
