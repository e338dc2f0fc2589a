package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tddbank/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUserNameRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	name, err := repo.ReadUserName(ctx)
	if err != nil {
		t.Fatalf("ReadUserName on empty store: %v", err)
	}
	if name != "" {
		t.Fatalf("empty store returned name %q", name)
	}

	if err := repo.WriteUserName(ctx, "Admin User"); err != nil {
		t.Fatalf("WriteUserName: %v", err)
	}
	name, err = repo.ReadUserName(ctx)
	if err != nil {
		t.Fatalf("ReadUserName: %v", err)
	}
	if name != "Admin User" {
		t.Fatalf("name = %q, want Admin User", name)
	}

	if err := repo.ClearUserName(ctx); err != nil {
		t.Fatalf("ClearUserName: %v", err)
	}
	name, _ = repo.ReadUserName(ctx)
	if name != "" {
		t.Fatalf("name survived clear: %q", name)
	}
}

func TestProfilePersistence(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.ReadProfile(ctx); err != nil || ok {
		t.Fatalf("ReadProfile on empty store = ok %v, err %v", ok, err)
	}

	p := core.DefaultProfile("Test User")
	p.Email = "test@tddbank.com"
	p.Is2FAEnabled = true
	if err := repo.WriteProfile(ctx, p); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	got, ok, err := repo.ReadProfile(ctx)
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if !ok {
		t.Fatal("profile not found after write")
	}
	if got.FullName != "Test User" || got.Email != "test@tddbank.com" || !got.Is2FAEnabled {
		t.Fatalf("profile round trip mismatch: %+v", got)
	}

	// Second write replaces, not duplicates.
	p.FullName = "Renamed"
	if err := repo.WriteProfile(ctx, p); err != nil {
		t.Fatalf("WriteProfile update: %v", err)
	}
	got, _, _ = repo.ReadProfile(ctx)
	if got.FullName != "Renamed" {
		t.Fatalf("profile update not persisted: %+v", got)
	}
}

func TestAppendAuditIsIdempotentPerEventID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entry := core.AuditEntry{
		ID:    "event-1",
		Kind:  core.AuditSignIn,
		Actor: "Admin User",
		At:    time.Now().UTC(),
	}

	first, err := repo.AppendAudit(ctx, entry)
	if err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}
	// A redelivered event must land on the same row.
	second, err := repo.AppendAudit(ctx, entry)
	if err != nil {
		t.Fatalf("AppendAudit redelivery: %v", err)
	}
	if first != second {
		t.Fatalf("redelivery created a new row: %q != %q", first, second)
	}

	entries, err := repo.ListAudit(ctx, 10)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(entries))
	}
}

func TestListAuditNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	for i, kind := range []core.AuditKind{core.AuditSignIn, core.AuditProfileUpdated, core.AuditSignOut} {
		entry := core.AuditEntry{
			ID:    "event-" + string(rune('a'+i)),
			Kind:  kind,
			Actor: "Admin User",
			At:    base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := repo.AppendAudit(ctx, entry); err != nil {
			t.Fatalf("AppendAudit %d: %v", i, err)
		}
	}

	entries, err := repo.ListAudit(ctx, 2)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Kind != core.AuditSignOut {
		t.Fatalf("first entry kind = %q, want newest (sign_out)", entries[0].Kind)
	}
}

func TestWipeClearsEntriesButKeepsAudit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.WriteUserName(ctx, "Admin User"); err != nil {
		t.Fatalf("WriteUserName: %v", err)
	}
	if err := repo.WriteProfile(ctx, core.DefaultProfile("Admin User")); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}
	if _, err := repo.AppendAudit(ctx, core.AuditEntry{
		ID: "event-wipe", Kind: core.AuditDeactivated, Actor: "Admin User", At: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}

	if err := repo.Wipe(ctx); err != nil {
		t.Fatalf("Wipe: %v", err)
	}

	if name, _ := repo.ReadUserName(ctx); name != "" {
		t.Fatalf("user name survived wipe: %q", name)
	}
	if _, ok, _ := repo.ReadProfile(ctx); ok {
		t.Fatal("profile survived wipe")
	}

	entries, err := repo.ListAudit(ctx, 10)
	if err != nil {
		t.Fatalf("ListAudit after wipe: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("audit trail rows after wipe = %d, want 1", len(entries))
	}
}
