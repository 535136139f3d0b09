package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/auth"
	"github.com/personaltask/taskmanager/internal/application/ports"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

// TokenCookieName is the cookie browsers may hold the identity token in.
const TokenCookieName = "token"

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	emitter  ports.WebhookEmitter
	errs     ErrorWriter
	validate *validator.Validate
	log      zerolog.Logger
}

// NewAuthHandler builds the handler for /api/auth/*. emitter may be nil.
func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, emitter ports.WebhookEmitter, errs ErrorWriter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		emitter:  emitter,
		errs:     errs,
		validate: newValidator(),
		log:      log,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"max=200"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "register", err)
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		if _, invalid := domerrors.AsValidation(err); !invalid {
			AuditEmit(h.log, r, h.emitter, "user.register", "", false, err.Error())
			middleware.RecordAuthAttempt("register", false)
		}
		h.errs.write(w, r, "register", err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, userResponse(result.User))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeBody(r, h.validate, &body); err != nil {
		h.errs.write(w, r, "login", err)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		if _, invalid := domerrors.AsValidation(err); !invalid {
			AuditEmit(h.log, r, h.emitter, "user.login", "", false, err.Error())
			middleware.RecordAuthAttempt("login", false)
		}
		h.errs.write(w, r, "login", err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      userResponse(result.User),
	})
}

// Logout is stateless: tokens are not revoked, the client drops its copy.
// The token cookie is expired for browser clients that kept one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"max=254"`
	}
	if err := decodeBody(r, h.validate, &body); err != nil {
		var ve *domerrors.ValidationError
		if !errors.As(err, &ve) || ve.Field != "body" {
			h.errs.write(w, r, "logout", err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	email := strings.TrimSpace(body.Email)
	AuditEmit(h.log, r, h.emitter, "user.logout", "", true, "")
	middleware.RecordAuthAttempt("logout", true)
	msg := "User logged out successfully"
	if email != "" {
		msg = "User " + email + " logged out successfully"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}
