package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cosmicwatch/cosmicwatch-go/internal/middleware"
)

// RouterConfig carries everything the HTTP surface is built from.
type RouterConfig struct {
	Auth      *AuthHandler
	Watchlist *WatchlistHandler
	Alerts    *AlertHandler
	Neo       *NeoHandler
	Tokens    middleware.TokenValidator
	Logger    *slog.Logger

	// AuthLimiter throttles signup and login. Nil disables throttling.
	AuthLimiter func(http.Handler) http.Handler
	// Metrics is mounted at /metrics when set.
	Metrics     http.Handler
	CORSOrigins []string
}

// NewRouter builds the chi router for the API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.Logger != nil {
		r.Use(middleware.Logger(cfg.Logger))
	}
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.AuthLimiter != nil {
					r.Use(cfg.AuthLimiter)
				}
				r.Post("/signup", cfg.Auth.HandleSignup)
				r.Post("/login", cfg.Auth.HandleLogin)
			})
			r.With(middleware.JWTAuth(cfg.Tokens)).Get("/profile", cfg.Auth.HandleProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.Tokens))

			r.Get("/watchlist", cfg.Watchlist.HandleList)
			r.Post("/watchlist/{asteroidId}", cfg.Watchlist.HandleAdd)
			r.Delete("/watchlist/{asteroidId}", cfg.Watchlist.HandleRemove)

			r.Get("/alerts", cfg.Alerts.HandleList)
			r.Post("/alerts", cfg.Alerts.HandleCreate)
			r.Put("/alerts/{alertId}", cfg.Alerts.HandleUpdate)
		})

		if cfg.Neo != nil {
			r.Get("/neo/feed", cfg.Neo.HandleFeed)
			r.Get("/neo/{id}", cfg.Neo.HandleObject)
		}
	})

	return r
}
