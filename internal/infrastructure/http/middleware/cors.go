package middleware

import (
	"net/http"
	"strings"
)

// DefaultAllowedOrigins are the front-ends served when no allow-list is configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://192.168.19.169:3001",
	"https://personal-task-manager-b5aw.vercel.app",
}

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Requested-With"
	corsMaxAge       = "86400"
)

// CORSPolicy computes the cross-origin header set for every response.
// An origin that is not allow-listed is answered with the first allow-listed
// origin, so the browser refuses the response rather than the server.
type CORSPolicy struct {
	origins []string
	allowed map[string]struct{}
}

// NewCORSPolicy builds a policy from origins, falling back to DefaultAllowedOrigins.
func NewCORSPolicy(origins []string) *CORSPolicy {
	p := &CORSPolicy{allowed: make(map[string]struct{})}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, dup := p.allowed[o]; dup {
			continue
		}
		p.allowed[o] = struct{}{}
		p.origins = append(p.origins, o)
	}
	if len(p.origins) == 0 {
		return NewCORSPolicy(DefaultAllowedOrigins)
	}
	return p
}

// Origins returns the allow-list in configured order.
func (p *CORSPolicy) Origins() []string {
	return append([]string(nil), p.origins...)
}

// EffectiveOrigin echoes an allow-listed origin, otherwise returns the first entry.
func (p *CORSPolicy) EffectiveOrigin(origin string) string {
	if _, ok := p.allowed[origin]; ok {
		return origin
	}
	return p.origins[0]
}

// Headers returns the full header set for a request from origin.
func (p *CORSPolicy) Headers(origin string) http.Header {
	h := make(http.Header, 6)
	h.Set("Access-Control-Allow-Origin", p.EffectiveOrigin(origin))
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Max-Age", corsMaxAge)
	h.Set("Vary", "Origin")
	return h
}

// Apply writes the header set for r onto w.
func (p *CORSPolicy) Apply(w http.ResponseWriter, r *http.Request) {
	dst := w.Header()
	for k, v := range p.Headers(r.Header.Get("Origin")) {
		dst[k] = v
	}
}

// Preflight answers an OPTIONS request: 200, empty body.
func (p *CORSPolicy) Preflight(w http.ResponseWriter, r *http.Request) {
	p.Apply(w, r)
	w.WriteHeader(http.StatusOK)
}

// Handler sets the header set on every response and short-circuits OPTIONS
// before anything downstream (including Gate) runs.
func (p *CORSPolicy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			p.Preflight(w, r)
			return
		}
		p.Apply(w, r)
		next.ServeHTTP(w, r)
	})
}
