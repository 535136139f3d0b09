package ports

import "context"

// AuditEnqueuer hands audit events to a background worker for delivery.
type AuditEnqueuer interface {
	EnqueueAuditEvent(ctx context.Context, event AuditEvent) error
}
