package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"quiz-trainer/internal/app"
	"quiz-trainer/internal/auth"
)

// RouterConfig carries the dependencies of the HTTP surface.
type RouterConfig struct {
	Auth           *auth.Authenticator
	Uploader       app.Uploader
	Messages       app.Messages
	StaticDir      string
	AllowedOrigins []string
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

// NewRouter mounts the login pages, the upload endpoint and the live quiz socket.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth, cfg.StaticDir, cfg.SessionTTL)
	uploadHandler := NewUploadHandler(cfg.Uploader, cfg.MaxUploadBytes)
	wsHandler := NewWSHandler(cfg.Uploader, cfg.MaxUploadBytes, app.WithMessages(cfg.Messages))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	r.Group(func(pr chi.Router) {
		pr.Use(authHandler.RequireUser(false))
		pr.Get("/", authHandler.Index)
		pr.Get("/ws", wsHandler.ServeWS)
	})

	r.Group(func(api chi.Router) {
		if len(cfg.AllowedOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   cfg.AllowedOrigins,
				AllowedMethods:   []string{"POST", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		api.Use(authHandler.RequireUser(true))
		api.Post("/upload", uploadHandler.ServeHTTP)
	})

	return r
}
