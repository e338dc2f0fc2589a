package amqp

import (
	"testing"

	"tddbank/internal/core"
)

func TestNewAuditEventMessage(t *testing.T) {
	msg := NewAuditEventMessage(core.AuditSignIn, "admin@tddbank.com", "signed in as Admin User")

	if msg.EventID == "" {
		t.Fatal("event ID not assigned")
	}
	if msg.Kind != string(core.AuditSignIn) {
		t.Fatalf("kind = %q, want %q", msg.Kind, core.AuditSignIn)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not assigned")
	}

	other := NewAuditEventMessage(core.AuditSignIn, "admin@tddbank.com", "")
	if msg.EventID == other.EventID {
		t.Fatal("event IDs must be unique per message")
	}
}

func TestAuditEventMessageToEntry(t *testing.T) {
	msg := NewAuditEventMessage(core.AuditDeactivated, "Test User", "account wiped")

	entry, err := msg.ToEntry()
	if err != nil {
		t.Fatalf("ToEntry failed: %v", err)
	}
	if entry.ID != msg.EventID || entry.Actor != "Test User" {
		t.Fatalf("entry = %+v, mismatched message fields", entry)
	}
	if entry.Kind != core.AuditDeactivated {
		t.Fatalf("entry kind = %q, want %q", entry.Kind, core.AuditDeactivated)
	}
}

func TestAuditEventMessageToEntryRejectsUnknownKind(t *testing.T) {
	msg := NewAuditEventMessage(core.AuditSignOut, "Test User", "")
	msg.Kind = "password_changed"

	if _, err := msg.ToEntry(); err == nil {
		t.Fatal("expected error for unknown audit kind")
	}
}

func TestAuditEventMessageRoundTrip(t *testing.T) {
	msg := NewAuditEventMessage(core.AuditProfileUpdated, "manager@tddbank.com", "updated mobile number")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	decoded, err := AuditEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if decoded.EventID != msg.EventID || decoded.Kind != msg.Kind || decoded.Detail != msg.Detail {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, msg)
	}
}

func TestAuditEventMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := AuditEventMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
