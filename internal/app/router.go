package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/osa-portal/osa-portal/internal/admin"
	"github.com/osa-portal/osa-portal/internal/auth"
	"github.com/osa-portal/osa-portal/internal/observability"
	"github.com/osa-portal/osa-portal/internal/partnerships"
	"github.com/osa-portal/osa-portal/internal/shared"
	"github.com/osa-portal/osa-portal/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthMiddleware     auth.Middleware
	PartnershipHandler *partnerships.Handler
	UsersHandler       *users.Handler
	AdminHandler       *admin.Handler
	UploadRoot         string
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		// Credential endpoints are the brute-force surface; keep them on a
		// tighter budget than the rest of the API.
		r.Use(httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/partnerships", params.PartnershipHandler.MountRoutes)

	r.Route("/admin", func(r chi.Router) {
		r.Use(params.AuthMiddleware.Authenticate)
		r.Use(params.AuthMiddleware.RequireRoles(shared.RoleAdmin))
		params.UsersHandler.MountRoutes(r)
		params.AdminHandler.MountRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.UploadRoot != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(params.UploadRoot)))
		r.Handle("/uploads/*", fileServer)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	})

	return r
}
