package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tddbank/internal/core"
)

// AuditEventMessage is the wire form of one audit trail event. The
// worker persists it; the web process only publishes.
type AuditEventMessage struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAuditEventMessage creates a message with a fresh event ID.
func NewAuditEventMessage(kind core.AuditKind, actor, detail string) *AuditEventMessage {
	return &AuditEventMessage{
		EventID:   uuid.NewString(),
		Kind:      string(kind),
		Actor:     actor,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AuditEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AuditEventMessageFromJSON creates a message from JSON bytes
func AuditEventMessageFromJSON(data []byte) (*AuditEventMessage, error) {
	var msg AuditEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ToEntry converts the wire message into the audit entry stored by the
// worker.
func (m *AuditEventMessage) ToEntry() (core.AuditEntry, error) {
	e := core.AuditEntry{
		ID:     m.EventID,
		Kind:   core.AuditKind(m.Kind),
		Actor:  m.Actor,
		Detail: m.Detail,
		At:     m.Timestamp,
	}
	if err := e.Kind.Validate(); err != nil {
		return core.AuditEntry{}, err
	}
	return e, nil
}
