package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personaltask/taskmanager/internal/application/ports"
)

func TestHTTPEmitterPostsEvent(t *testing.T) {
	var got ports.AuditEvent
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	at := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	e := NewHTTPEmitter(srv.URL, WithHeader("Authorization", "Bearer hook"))
	err := e.Emit(context.Background(), ports.AuditEvent{
		Event:      "user.login",
		UserID:     "u-1",
		Success:    true,
		OccurredAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer hook", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "user.login", got.Event)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.Success)
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestHTTPEmitterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPEmitter(srv.URL).Emit(context.Background(), ports.AuditEvent{Event: "user.logout"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
}

func TestNoopEmitter(t *testing.T) {
	assert.NoError(t, NewNoopEmitter().Emit(context.Background(), ports.AuditEvent{Event: "x"}))
}
