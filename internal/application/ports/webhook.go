package ports

import (
	"context"
	"time"
)

// AuditEvent is a single audit event for logging or webhooks.
type AuditEvent struct {
	Event      string    `json:"event"` // user.register, user.login, user.logout, auth.rejected, ...
	UserID     string    `json:"user_id,omitempty"`
	IP         string    `json:"ip,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Success    bool      `json:"success"`
	Err        string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WebhookEmitter sends audit events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
