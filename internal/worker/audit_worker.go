package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tddbank/internal/amqp"
	"tddbank/internal/store"
)

// AuditWorker persists audit trail events consumed from AMQP. The web
// process publishes fire-and-forget; this worker is the only writer of
// the durable audit trail.
type AuditWorker struct {
	log store.AuditLog
}

func NewAuditWorker(log store.AuditLog) *AuditWorker {
	return &AuditWorker{log: log}
}

// HandleAuditEvent processes a single audit event message from AMQP.
// Returning an error requeues the delivery, so persistence failures are
// retried and malformed events are surfaced as terminal errors by the
// caller's nack policy.
func (w *AuditWorker) HandleAuditEvent(ctx context.Context, msg *amqp.AuditEventMessage) error {
	entry, err := msg.ToEntry()
	if err != nil {
		return fmt.Errorf("convert audit event %s: %w", msg.EventID, err)
	}

	ref, err := w.log.AppendAudit(ctx, entry)
	if err != nil {
		return fmt.Errorf("append audit entry %s: %w", entry.ID, err)
	}

	slog.InfoContext(ctx, "Stored audit entry",
		"event_id", entry.ID,
		"kind", entry.Kind,
		"ref", ref)

	return nil
}
