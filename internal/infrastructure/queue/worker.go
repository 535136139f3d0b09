package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/ports"
)

// AuditDeliveryHandler delivers queued audit events to a webhook.
type AuditDeliveryHandler struct {
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

func NewAuditDeliveryHandler(emitter ports.WebhookEmitter, log zerolog.Logger) *AuditDeliveryHandler {
	return &AuditDeliveryHandler{emitter: emitter, log: log}
}

// ProcessTask implements asynq.Handler. A malformed payload is not retried.
func (h *AuditDeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var event ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		h.log.Error().Err(err).Msg("audit task payload invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err := h.emitter.Emit(ctx, event); err != nil {
		h.log.Warn().Err(err).Str("event", event.Event).Msg("audit delivery failed")
		return err
	}
	h.log.Debug().Str("event", event.Event).Msg("audit event delivered")
	return nil
}

// Worker runs the asynq server for audit delivery.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisConnOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.WarnLevel,
	})
	mux := asynq.NewServeMux()
	mux.Handle(TypeAuditDeliver, NewAuditDeliveryHandler(emitter, log))
	return &Worker{srv: srv, mux: mux, log: log}
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
