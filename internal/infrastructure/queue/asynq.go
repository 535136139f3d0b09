package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/ports"
)

const (
	TypeAuditDeliver = "audit:deliver"

	auditMaxRetry = 5
	auditTimeout  = 30 * time.Second
)

// AuditEnqueuer pushes audit events onto the asynq queue. It also satisfies
// ports.WebhookEmitter so handlers can use it in place of a direct emitter.
type AuditEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAuditEnqueuer(redisOpt asynq.RedisConnOpt, log zerolog.Logger) *AuditEnqueuer {
	return &AuditEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *AuditEnqueuer) Close() error {
	return q.client.Close()
}

// NewAuditTask builds the asynq task for an audit event.
func NewAuditTask(event ports.AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	return asynq.NewTask(TypeAuditDeliver, payload,
		asynq.MaxRetry(auditMaxRetry),
		asynq.Timeout(auditTimeout),
	), nil
}

func (q *AuditEnqueuer) EnqueueAuditEvent(ctx context.Context, event ports.AuditEvent) error {
	task, err := NewAuditTask(event)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue audit event failed")
		return err
	}
	return nil
}

// Emit implements ports.WebhookEmitter by enqueueing the event.
func (q *AuditEnqueuer) Emit(ctx context.Context, event ports.AuditEvent) error {
	return q.EnqueueAuditEvent(ctx, event)
}

var (
	_ ports.AuditEnqueuer  = (*AuditEnqueuer)(nil)
	_ ports.WebhookEmitter = (*AuditEnqueuer)(nil)
)
