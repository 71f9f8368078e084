package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/view"
)

const requestTimeout = 3 * time.Second

// Handler serves the dashboard page and its JSON twin.
type Handler struct {
	logger  *slog.Logger
	service *Service
	views   *view.Renderer
	rbac    rbac.Middleware
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, views *view.Renderer, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, views: views, rbac: rbac}
}

// MountRoutes registers GET / on the dashboard router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleDashboard, rbac.ActionRead)).Get("/", h.page)
}

// MountAPIRoutes registers GET / on the API dashboard router.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleDashboard, rbac.ActionRead)).Get("/", h.json)
}

type pageData struct {
	Metrics   Metrics
	LoadError string
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	m, err := h.service.Metrics(ctx)
	data := pageData{Metrics: m}
	if err != nil {
		h.logger.Error("dashboard metrics failed", slog.Any("error", err))
		data.LoadError = "Failed to load dashboard metrics"
	}
	h.views.Render(w, r, "pages/dashboard.html", "Dashboard", data, http.StatusOK)
}

func (h *Handler) json(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	m, err := h.service.Metrics(ctx)
	if err != nil {
		h.logger.Error("dashboard metrics failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Dashboard retrieved successfully", m)
}
