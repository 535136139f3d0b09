package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/auth"
	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

// UsersHandler handles /api/user/*. Requires Gate.
type UsersHandler struct {
	update   *auth.UpdateProfile
	emitter  ports.WebhookEmitter
	errs     ErrorWriter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUsersHandler(update *auth.UpdateProfile, emitter ports.WebhookEmitter, errs ErrorWriter, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{update: update, emitter: emitter, errs: errs, validate: newValidator(), log: log}
}

// Update changes the caller's own name or password. The account is taken from
// the token; an email in the body does not select another account.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var body struct {
		Name     string `json:"name" validate:"max=200"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "update user", err)
		return
	}
	user, err := h.update.Execute(r.Context(), auth.UpdateProfileInput{
		UserID:   identity.UserID,
		Name:     body.Name,
		Password: body.Password,
	})
	if err != nil {
		h.errs.write(w, r, "update user", err)
		return
	}
	if body.Password != "" {
		AuditEmit(h.log, r, h.emitter, "user.password_changed", user.ID.String(), true, "")
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}
