package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/ports"
	authmw "github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

const auditEmitTimeout = 3 * time.Second

// AuditLog logs auth events (user_id, IP).
func AuditLog(log zerolog.Logger, r *http.Request, event, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", userID).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
}

// AuditEmit logs the event and, if emitter is non-nil, hands it to the emitter.
// Emitter failures are logged and never change the response. Callers on the
// request path pass a webhook.AsyncEmitter so delivery does not delay the reply.
func AuditEmit(log zerolog.Logger, r *http.Request, emitter ports.WebhookEmitter, event, userID string, success bool, errMsg string) {
	AuditLog(log, r, event, userID, success, errMsg)
	if emitter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), auditEmitTimeout)
	defer cancel()
	err := emitter.Emit(ctx, ports.AuditEvent{
		Event:      event,
		UserID:     userID,
		IP:         getClientIP(r),
		RequestID:  middleware.GetReqID(r.Context()),
		Success:    success,
		Err:        errMsg,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("audit emit failed")
	}
}

// GateRejectionAudit returns a hook that records gate rejections as auth.rejected events.
func GateRejectionAudit(log zerolog.Logger, emitter ports.WebhookEmitter) authmw.RejectHook {
	return func(r *http.Request, reason authmw.RejectReason) {
		AuditEmit(log, r, emitter, "auth.rejected", "", false, reason.String())
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
