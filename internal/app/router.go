package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/freightdesk/freightdesk/internal/auth"
	"github.com/freightdesk/freightdesk/internal/dashboard"
	"github.com/freightdesk/freightdesk/internal/observability"
	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/users"
	"github.com/freightdesk/freightdesk/jobs"
	"github.com/freightdesk/freightdesk/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	RBACMiddleware   rbac.Middleware
	AuthHandler      *auth.Handler
	AuthAPIHandler   *auth.APIHandler
	UsersHandler     *users.Handler
	DashboardHandler *dashboard.Handler
	JobHandler       *jobs.Handler
	Resources        []Routes
	Metrics          *observability.Metrics
	Pool             *pgxpool.Pool
	Redis            *redis.Client
}

// NewRouter constructs the chi.Router with FreightDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	mwConfig := MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}
	for _, mw := range MiddlewareStack(mwConfig) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(params))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range BrowserStack(mwConfig) {
			r.Use(mw)
		}
		r.Use(params.RBACMiddleware.LoadSession)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := rbac.PrincipalFromContext(r.Context()); !ok {
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		})
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(params.RBACMiddleware.RequireAuth)
			params.DashboardHandler.MountRoutes(r)
			params.UsersHandler.MountRoutes(r)
			for _, res := range params.Resources {
				r.Route("/"+res.Path, func(r chi.Router) {
					for _, mount := range res.HTML {
						mount(r)
					}
				})
			}
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(params.RBACMiddleware.LoadBearer)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httpx.Fail(w, http.StatusNotFound, "Resource not found", nil)
		})
		r.Route("/auth", params.AuthAPIHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountAPIRoutes)
		r.Route("/settings", params.UsersHandler.MountAPIRoutes)
		for _, res := range params.Resources {
			r.Route("/"+res.APIPath, func(r chi.Router) {
				for _, mount := range res.API {
					mount(r)
				}
			})
		}
		if params.JobHandler != nil {
			r.With(params.RBACMiddleware.RequireRoles(rbac.RoleAdmin)).Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}

func readiness(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := map[string]string{"postgres": "ok", "redis": "ok"}
		status := http.StatusOK
		if params.Pool != nil {
			if err := params.Pool.Ping(ctx); err != nil {
				checks["postgres"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		if params.Redis != nil {
			if err := params.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		httpx.JSON(w, status, checks)
	}
}

// Some minimal container images ship without a mime database.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
}

// staticCacheHandler lets browsers cache embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if typ, ok := staticTypes[path.Ext(r.URL.Path)]; ok {
			w.Header().Set("Content-Type", typ)
		}
		next.ServeHTTP(w, r)
	})
}
