package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/ports"
	"github.com/personaltask/taskmanager/internal/domain"
	domerrors "github.com/personaltask/taskmanager/internal/domain/errors"
)

// RejectReason says why the Gate refused a request.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonNoToken
	ReasonMalformedToken
	ReasonSignatureInvalid
	ReasonExpiredToken
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoToken:
		return "no_token"
	case ReasonMalformedToken:
		return "malformed_token"
	case ReasonSignatureInvalid:
		return "signature_invalid"
	case ReasonExpiredToken:
		return "expired_token"
	default:
		return "unknown"
	}
}

// Status is the HTTP status a rejection is answered with. Only a missing token
// is 401; every token that fails verification is 403.
func (r RejectReason) Status() int {
	if r == ReasonNoToken {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// Message is the client-visible error. Expiry and forgery read the same.
func (r RejectReason) Message() string {
	if r == ReasonNoToken {
		return "Unauthorized"
	}
	return "Invalid Token"
}

// Decision is the outcome of Gate.Authorize: either an identity or a reason.
type Decision struct {
	identity domain.Identity
	reason   RejectReason
}

// Authorized returns an accepting decision.
func Authorized(identity domain.Identity) Decision {
	return Decision{identity: identity}
}

// Rejected returns a refusing decision.
func Rejected(reason RejectReason) Decision {
	return Decision{reason: reason}
}

// Identity returns the identity and true when the request was authorized.
func (d Decision) Identity() (domain.Identity, bool) {
	return d.identity, d.reason == ReasonNone
}

// Reason returns ReasonNone for an authorized decision.
func (d Decision) Reason() RejectReason { return d.reason }

// RejectHook observes gate rejections (audit, metrics).
type RejectHook func(r *http.Request, reason RejectReason)

// Gate authorizes requests carrying a bearer identity token.
type Gate struct {
	verifier ports.TokenVerifier
	log      zerolog.Logger
	onReject RejectHook
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithRejectHook installs a callback run for every rejected request.
func WithRejectHook(hook RejectHook) GateOption {
	return func(g *Gate) { g.onReject = hook }
}

func NewGate(verifier ports.TokenVerifier, log zerolog.Logger, opts ...GateOption) *Gate {
	g := &Gate{verifier: verifier, log: log}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize inspects the Authorization header and verifies the token. It has
// no side effects.
func (g *Gate) Authorize(r *http.Request) Decision {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		if token == "" {
			return Rejected(ReasonNoToken)
		}
		return Rejected(ReasonMalformedToken)
	}
	identity, err := g.verifier.Verify(token)
	switch {
	case err == nil:
		return Authorized(identity)
	case errors.Is(err, domerrors.ErrTokenExpired):
		return Rejected(ReasonExpiredToken)
	case errors.Is(err, domerrors.ErrTokenSignatureInvalid):
		return Rejected(ReasonSignatureInvalid)
	default:
		return Rejected(ReasonMalformedToken)
	}
}

// bearerToken extracts the credential of a "Bearer <token>" header. The scheme
// is matched case-insensitively. ok is false with an empty token when there is
// nothing to verify, and false with a non-empty token for another scheme.
//
// Another scheme ("Basic xyz") deliberately maps to ReasonMalformedToken (403),
// not ReasonNoToken: a credential was presented and it is not one we accept.
// Existing clients rely on 401 meaning "no credential sent".
func bearerToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	scheme, rest, found := strings.Cut(header, " ")
	rest = strings.TrimSpace(rest)
	if !strings.EqualFold(scheme, "Bearer") {
		return header, false
	}
	if !found || rest == "" {
		return "", false
	}
	return rest, true
}

// Handler rejects unauthorized requests and passes the identity on in the context.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := g.Authorize(r)
		identity, ok := decision.Identity()
		if !ok {
			reason := decision.Reason()
			RecordGateRejection(reason)
			g.log.Warn().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("reason", reason.String()).
				Msg("request rejected by gate")
			if g.onReject != nil {
				g.onReject(r, reason)
			}
			writeErr(w, reason.Status(), reason.Message())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
