package crud

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mdshared "github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
)

// APIHandler serves the JSON endpoints of one resource.
type APIHandler[T any] struct {
	logger  *slog.Logger
	res     Resource[T]
	service Service[T]
	rbac    rbac.Middleware
	audit   shared.AuditRecorder
}

// NewAPIHandler builds an APIHandler.
func NewAPIHandler[T any](logger *slog.Logger, res Resource[T], service Service[T], rbac rbac.Middleware, audit shared.AuditRecorder) *APIHandler[T] {
	return &APIHandler[T]{logger: logger, res: res, service: service, rbac: rbac, audit: audit}
}

// MountRoutes registers list, search, get, create, update and delete.
func (h *APIHandler[T]) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(h.res.Module, rbac.ActionRead)).Get("/", h.list)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionRead)).Get("/search", h.search)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionRead)).Get("/{id}", h.get)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionCreate)).Post("/", h.create)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionUpdate)).Put("/{id}", h.update)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionUpdate)).Patch("/{id}", h.update)
	r.With(h.rbac.Require(h.res.Module, rbac.ActionDelete)).Delete("/{id}", h.delete)
}

func (h *APIHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	filters := h.filters(r)
	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("api list "+h.res.Plural+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, h.res.PluralTitle()+" retrieved successfully", shared.NewPage(items, filters.Page, filters.Limit, total))
}

// search answers with a bare array, the shape dropdown lookups consume.
func (h *APIHandler[T]) search(w http.ResponseWriter, r *http.Request) {
	filters := h.filters(r)
	filters.Page = 1
	items, _, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("api search "+h.res.Plural+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	httpx.OK(w, http.StatusOK, h.res.PluralTitle()+" retrieved successfully", items)
}

func (h *APIHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, h.res.Title()+" retrieved successfully", item)
}

func (h *APIHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	created, err := h.service.Create(r.Context(), item)
	if err != nil {
		h.logger.Error("api create "+h.res.Name+" failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	recordAudit(r.Context(), h.audit, h.logger, "create", h.res.Name, h.res.ID(created))
	httpx.OK(w, http.StatusCreated, h.res.Title()+" created successfully", created)
}

func (h *APIHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var item T
	if err := httpx.DecodeJSON(r, &item); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	updated, err := h.service.Update(r.Context(), id, item)
	if err != nil {
		h.logger.Error("api update "+h.res.Name+" failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	recordAudit(r.Context(), h.audit, h.logger, "update", h.res.Name, id)
	httpx.OK(w, http.StatusOK, h.res.Title()+" updated successfully", updated)
}

func (h *APIHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("api delete "+h.res.Name+" failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	recordAudit(r.Context(), h.audit, h.logger, "delete", h.res.Name, id)
	httpx.OK(w, http.StatusOK, h.res.Title()+" deleted successfully", nil)
}

func (h *APIHandler[T]) filters(r *http.Request) mdshared.ListFilters {
	q := r.URL.Query()
	filters := mdshared.ParseListFilters(q)
	if h.res.Filters != nil {
		h.res.Filters(q, &filters)
	}
	return filters
}

func (h *APIHandler[T]) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid "+lowerTitle(h.res.Name)+" ID", nil)
		return 0, false
	}
	return id, true
}
