package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/auth"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/personaltask/taskmanager/internal/infrastructure/security"
)

const msgInternal = "Internal server error"

// writeErr sends JSON { "error": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorWriter maps use case errors to responses. Unexpected errors are logged
// and answered with a generic 500; details are added only when ExposeDetails is set.
type ErrorWriter struct {
	Log           zerolog.Logger
	ExposeDetails bool
}

func (e ErrorWriter) write(w http.ResponseWriter, r *http.Request, op string, err error) {
	if ve, ok := domerrors.AsValidation(err); ok {
		writeErr(w, http.StatusBadRequest, ve.Message)
		return
	}
	var locked *auth.LockedError
	switch {
	case errors.As(err, &locked):
		w.Header().Set("Retry-After", itoa(locked.RetryAfterSeconds))
		writeErr(w, http.StatusTooManyRequests, "Too many failed login attempts")
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, "Too many failed login attempts")
	case errors.Is(err, domerrors.ErrUserExists):
		writeErr(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domerrors.ErrProjectNotFound):
		writeErr(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, domerrors.ErrTaskNotFound):
		writeErr(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, security.ErrPasswordTooLong):
		writeErr(w, http.StatusBadRequest, "Password is too long")
	default:
		e.Log.Error().
			Err(err).
			Str("op", op).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request failed")
		body := map[string]string{"error": msgInternal}
		if e.ExposeDetails {
			body["details"] = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
