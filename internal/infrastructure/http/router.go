package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/infrastructure/http/handlers"
	"github.com/personaltask/taskmanager/internal/infrastructure/http/middleware"
)

// APIVersion is reported in the X-API-Version header.
const APIVersion = "1"

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	HealthHandler   *handlers.HealthHandler
	CORS            *middleware.CORSPolicy
	Gate            *middleware.Gate
	RequireAdmin    func(http.Handler) http.Handler // X-Admin-Secret for /metrics
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler // /api/auth/*
	UserRateLimit   func(http.Handler) http.Handler // protected routes, after Gate
	Metrics         bool                            // expose /metrics
}

// NewRouter mounts the API. CORS sits outside everything else so that every
// response, including 404, 405, panics and gate rejections, carries its headers.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	if cfg.CORS != nil {
		r.Use(cfg.CORS.Handler)
	}
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(middleware.APIVersion(APIVersion))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		metrics := promhttp.Handler()
		if cfg.RequireAdmin != nil {
			metrics = cfg.RequireAdmin(metrics)
		}
		r.Handle("/metrics", metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chimid.SetHeader("Content-Type", "application/json"))

		r.Route("/auth", func(r chi.Router) {
			if cfg.IPRateLimit != nil {
				r.Use(cfg.IPRateLimit)
			}
			r.Use(chimid.AllowContentType("application/json"))
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			// Gate first: an unauthenticated request is 401 whatever its body.
			r.Use(cfg.Gate.Handler)
			if cfg.UserRateLimit != nil {
				r.Use(cfg.UserRateLimit)
			}
			r.Use(chimid.AllowContentType("application/json"))
			r.Put("/user/update", cfg.UsersHandler.Update)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/allprojects", cfg.ProjectsHandler.List)
				r.Post("/create", cfg.ProjectsHandler.Create)
				r.Put("/update", cfg.ProjectsHandler.Update)
				r.Delete("/delete", cfg.ProjectsHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/gettask", cfg.TasksHandler.List)
				r.Post("/create", cfg.TasksHandler.Create)
				r.Put("/update/{id}", cfg.TasksHandler.Update)
				r.Delete("/delete/{id}", cfg.TasksHandler.Delete)
			})
		})
	})

	return r
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
