package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	TaskHandler    *handlers.TaskHandler
	ProfileHandler *handlers.ProfileHandler
	HealthHandler  *handlers.HealthHandler
	RequireJWT     func(http.Handler) http.Handler
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	CORS           func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/verify-otp", cfg.AuthHandler.VerifyOTP)
		r.Post("/resend-otp", cfg.AuthHandler.ResendOTP)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh-token", cfg.AuthHandler.RefreshToken)
		// Logout revokes the caller's own session, so it sits behind auth.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.TaskHandler.List)
		r.Post("/", cfg.TaskHandler.Create)
		r.Get("/{id}", cfg.TaskHandler.Get)
		r.Put("/{id}", cfg.TaskHandler.Update)
		r.Delete("/{id}", cfg.TaskHandler.Delete)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.ProfileHandler.Get)
		r.Put("/", cfg.ProfileHandler.Update)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
