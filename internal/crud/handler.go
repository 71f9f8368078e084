package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	mdshared "github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/ui"
	"github.com/freightdesk/freightdesk/internal/view"
)

// ListPage is the data for pages/list.html.
type ListPage struct {
	Title    string
	Singular string
	BasePath string
	Module   string
	Search   string
	Table    ui.TableView
}

// ShowPage is the data for pages/show.html.
type ShowPage struct {
	Title    string
	BasePath string
	Module   string
	ID       int64
	Rows     []DetailRow
	Sections []Section
}

// FormPage is the data for pages/form.html.
type FormPage struct {
	Title     string
	Action    string
	CancelURL string
	Submit    string
	Form      Form
	Errors    map[string]string
	General   string
}

// ConfirmPage is the data for pages/confirm_delete.html.
type ConfirmPage struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
}

// Handler serves the HTML screens of one resource.
type Handler[T any] struct {
	logger  *slog.Logger
	res     Resource[T]
	service Service[T]
	views   *view.Renderer
	rbac    rbac.Middleware
	audit   shared.AuditRecorder
}

// NewHandler builds a Handler.
func NewHandler[T any](logger *slog.Logger, res Resource[T], service Service[T], views *view.Renderer, rbac rbac.Middleware, audit shared.AuditRecorder) *Handler[T] {
	return &Handler[T]{logger: logger, res: res, service: service, views: views, rbac: rbac, audit: audit}
}

// MountRoutes registers the resource routes.
func (h *Handler[T]) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(h.res.Module, rbac.ActionRead))
		r.Get("/", h.list)
		r.Get("/options", h.options)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(h.res.Module, rbac.ActionCreate))
		r.Get("/create", h.newForm)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(h.res.Module, rbac.ActionUpdate))
		r.Get("/{id}/edit", h.editForm)
		r.Post("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(h.res.Module, rbac.ActionDelete))
		r.Get("/{id}/delete", h.confirmDelete)
		r.Post("/{id}/delete", h.delete)
	})
}

func (h *Handler[T]) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := mdshared.ParseListFilters(q)
	if h.res.Filters != nil {
		h.res.Filters(q, &filters)
	}
	state := ui.PageState{Page: filters.Page, PageSize: filters.Limit, SortBy: filters.SortBy, SortDir: ui.ParseSortDir(filters.SortDir)}
	opts := ui.TableOptions{
		SortURL:      func(key string, dir ui.SortDir) string { return h.listURL(q, map[string]string{"sort_by": key, "sort_dir": string(dir), "page": "1"}) },
		PageURL:      func(n int) string { return h.listURL(q, map[string]string{"page": strconv.Itoa(n)}) },
		EmptyMessage: fmt.Sprintf("No %s found", lowerTitle(h.res.Plural)),
	}
	cols := append(append([]ui.Column[T](nil), h.res.Columns...), h.actionsColumn(rbac.GateFromContext(r.Context())))

	items, total, err := h.service.List(r.Context(), filters)
	status := http.StatusOK
	if err != nil {
		h.logger.Error("list "+h.res.Plural+" failed", slog.Any("error", err))
		opts.LoadError = fmt.Sprintf("Failed to load %s", lowerTitle(h.res.Plural))
		opts.RetryURL = r.URL.RequestURI()
		status = http.StatusInternalServerError
	}
	page := shared.NewPage(items, filters.Page, filters.Limit, total)

	h.views.Render(w, r, "pages/list.html", h.res.PluralTitle(), ListPage{
		Title:    h.res.PluralTitle(),
		Singular: h.res.Title(),
		BasePath: h.res.BasePath,
		Module:   h.res.Module,
		Search:   filters.Search,
		Table:    ui.NewTable(page, cols, state, opts),
	}, status)
}

func (h *Handler[T]) options(w http.ResponseWriter, r *http.Request) {
	filters := mdshared.ParseListFilters(r.URL.Query())
	filters.Page = 1
	active := true
	filters.IsActive = &active
	if h.res.Filters != nil {
		h.res.Filters(r.URL.Query(), &filters)
	}
	items, _, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list "+h.res.Plural+" options failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	opts := make([]ui.Option, 0, len(items))
	for _, item := range items {
		opts = append(opts, h.res.option(item))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(opts)
}

func (h *Handler[T]) show(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	page := ShowPage{
		Title:    h.res.Title() + ": " + h.res.Label(item),
		BasePath: h.res.BasePath,
		Module:   h.res.Module,
		ID:       h.res.ID(item),
		Rows:     h.res.Detail(item),
	}
	if h.res.Sections != nil {
		page.Sections = h.res.Sections(item, rbac.GateFromContext(r.Context()))
	}
	h.views.Render(w, r, "pages/show.html", h.res.Title(), page, http.StatusOK)
}

func (h *Handler[T]) newForm(w http.ResponseWriter, r *http.Request) {
	var zero T
	h.renderForm(w, r, zero, 0, nil, http.StatusOK)
}

func (h *Handler[T]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	item, err := h.res.Decode(r.PostForm)
	if err == nil {
		item, err = h.service.Create(r.Context(), item)
	}
	if err != nil {
		h.logger.Error("create "+h.res.Name+" failed", slog.Any("error", err))
		h.renderForm(w, r, item, 0, err, http.StatusUnprocessableEntity)
		return
	}
	id := h.res.ID(item)
	h.record(r.Context(), "create", id)
	h.redirectWithFlash(w, r, h.itemURL(id), shared.FlashSuccess, h.res.Title()+" created successfully")
}

func (h *Handler[T]) editForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, item, h.res.ID(item), nil, http.StatusOK)
}

func (h *Handler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	item, err := h.res.Decode(r.PostForm)
	if err == nil {
		item, err = h.service.Update(r.Context(), id, item)
	}
	if err != nil {
		h.logger.Error("update "+h.res.Name+" failed", slog.Any("error", err), slog.Int64("id", id))
		h.renderForm(w, r, item, id, err, http.StatusUnprocessableEntity)
		return
	}
	h.record(r.Context(), "update", id)
	h.redirectWithFlash(w, r, h.itemURL(id), shared.FlashSuccess, h.res.Title()+" updated successfully")
}

func (h *Handler[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	id := h.res.ID(item)
	h.views.Render(w, r, "pages/confirm_delete.html", "Delete "+h.res.Title(), ConfirmPage{
		Title:     "Delete " + h.res.Title(),
		Message:   fmt.Sprintf("Are you sure you want to delete %s %q? This action cannot be undone.", lowerTitle(h.res.Name), h.res.Label(item)),
		Action:    h.itemURL(id) + "/delete",
		CancelURL: h.res.BasePath,
	}, http.StatusOK)
}

func (h *Handler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete "+h.res.Name+" failed", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, h.res.BasePath, shared.FlashError,
			fmt.Sprintf("Failed to delete %s: %s", lowerTitle(h.res.Name), shared.UserSafeMessage(err)))
		return
	}
	h.record(r.Context(), "delete", id)
	h.redirectWithFlash(w, r, h.res.BasePath, shared.FlashSuccess, h.res.Title()+" deleted successfully")
}

func (h *Handler[T]) renderForm(w http.ResponseWriter, r *http.Request, item T, id int64, err error, status int) {
	page := FormPage{
		Title:     "Create " + h.res.Title(),
		Action:    h.res.BasePath,
		CancelURL: h.res.BasePath,
		Submit:    "Create",
		Form:      h.res.Form(r.Context(), item),
		Errors:    shared.FieldErrors(err),
	}
	if id > 0 {
		page.Title = "Edit " + h.res.Title()
		page.Action = h.itemURL(id)
		page.CancelURL = h.itemURL(id)
		page.Submit = "Save"
	}
	if err != nil {
		page.General = shared.UserSafeMessage(err)
	}
	h.views.Render(w, r, "pages/form.html", page.Title, page, status)
}

func (h *Handler[T]) load(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	id, ok := h.parseID(w, r)
	if !ok {
		return zero, false
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, h.res.Title()+" not found", http.StatusNotFound)
			return zero, false
		}
		h.logger.Error("get "+h.res.Name+" failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return zero, false
	}
	return item, true
}

func (h *Handler[T]) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid "+lowerTitle(h.res.Name)+" ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler[T]) actionsColumn(gate *rbac.Gate) ui.Column[T] {
	canUpdate := gate.Allow(h.res.Module, string(rbac.ActionUpdate))
	canDelete := gate.Allow(h.res.Module, string(rbac.ActionDelete))
	return ui.Column[T]{
		Key:    "actions",
		Header: "Actions",
		Cell: func(item T) template.HTML {
			base := template.HTMLEscapeString(h.itemURL(h.res.ID(item)))
			out := `<a href="` + base + `">View</a>`
			if canUpdate {
				out += ` <a href="` + base + `/edit">Edit</a>`
			}
			if canDelete {
				out += ` <a class="danger" href="` + base + `/delete">Delete</a>`
			}
			return template.HTML(out)
		},
	}
}

func (h *Handler[T]) itemURL(id int64) string {
	return h.res.BasePath + "/" + strconv.FormatInt(id, 10)
}

func (h *Handler[T]) listURL(current url.Values, set map[string]string) string {
	q := url.Values{}
	for k, v := range current {
		q[k] = append([]string(nil), v...)
	}
	for k, v := range set {
		q.Set(k, v)
	}
	q.Del("sort")
	q.Del("dir")
	return h.res.BasePath + "?" + q.Encode()
}

func (h *Handler[T]) record(ctx context.Context, action string, id int64) {
	recordAudit(ctx, h.audit, h.logger, action, h.res.Name, id)
}

func (h *Handler[T]) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	view.RedirectWithFlash(w, r, location, kind, message)
}

func recordAudit(ctx context.Context, audit shared.AuditRecorder, logger *slog.Logger, action, entity string, id int64) {
	if audit == nil {
		return
	}
	entry := shared.AuditLog{Action: action, Entity: entity, EntityID: strconv.FormatInt(id, 10)}
	if p, ok := rbac.PrincipalFromContext(ctx); ok {
		entry.ActorID = p.UserID
		entry.Actor = p.Email
	}
	if err := audit.Record(ctx, entry); err != nil {
		logger.Warn("audit record failed", slog.Any("error", err), slog.String("entity", entity))
	}
}
