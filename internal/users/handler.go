package users

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/view"
)

// Handler serves the self-service account screens and the permission matrix.
type Handler struct {
	logger  *slog.Logger
	service *Service
	views   *view.Renderer
	rbac    rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, views *view.Renderer, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, views: views, rbac: rbac}
}

// MountRoutes registers account routes under /dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Get("/profile", h.showProfile)
		r.Post("/profile", h.updateProfile)
		r.Get("/profile/password", h.showPassword)
		r.Post("/profile/password", h.changePassword)
	})
	r.With(h.rbac.Require(rbac.ModuleSettings, rbac.ActionRead)).Get("/permissions", h.permissions)
}

// MountAPIRoutes registers the JSON permission matrix.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleSettings, rbac.ActionRead)).Get("/permissions", h.permissionsJSON)
}

type profilePage struct {
	User   User
	Form   Profile
	Errors map[string]string
}

type passwordPage struct {
	Errors  map[string]string
	General string
}

// PermissionRow is one module line of the matrix.
type PermissionRow struct {
	Module string               `json:"module"`
	Grants map[rbac.Role]string `json:"grants"`
}

type permissionsPage struct {
	Roles []rbac.Role
	Rows  []PermissionRow
}

func (h *Handler) showProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := h.current(w, r)
	if !ok {
		return
	}
	h.views.Render(w, r, "pages/profile.html", "Profile", profilePage{
		User: u,
		Form: Profile{Name: u.Name, Phone: u.Phone, Department: u.Department},
	}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := h.current(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := Profile{Name: r.PostFormValue("name"), Phone: r.PostFormValue("phone"), Department: r.PostFormValue("department")}
	if _, err := h.service.UpdateProfile(r.Context(), u.ID, form); err != nil {
		h.logger.Error("update profile failed", slog.Any("error", err))
		h.views.Render(w, r, "pages/profile.html", "Profile", profilePage{User: u, Form: form, Errors: shared.FieldErrors(err)}, http.StatusUnprocessableEntity)
		return
	}
	view.RedirectWithFlash(w, r, "/dashboard/profile", shared.FlashSuccess, "Profile updated successfully")
}

func (h *Handler) showPassword(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "pages/change_password.html", "Change Password", passwordPage{}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	p, _ := rbac.PrincipalFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	change := PasswordChange{
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	if err := h.service.ChangePassword(r.Context(), p.UserID, change); err != nil {
		h.views.Render(w, r, "pages/change_password.html", "Change Password", passwordPage{
			Errors:  shared.FieldErrors(err),
			General: shared.UserSafeMessage(err),
		}, http.StatusUnprocessableEntity)
		return
	}
	view.RedirectWithFlash(w, r, "/dashboard/profile", shared.FlashSuccess, "Password changed successfully")
}

func (h *Handler) permissions(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "pages/permissions.html", "Permissions", permissionsPage{Roles: rbac.Roles(), Rows: PermissionMatrix()}, http.StatusOK)
}

func (h *Handler) permissionsJSON(w http.ResponseWriter, _ *http.Request) {
	httpx.OK(w, http.StatusOK, "Permissions retrieved successfully", PermissionMatrix())
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) (User, bool) {
	p, ok := rbac.PrincipalFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return User{}, false
	}
	u, err := h.service.Get(r.Context(), p.UserID)
	if err != nil {
		h.logger.Error("load profile failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return User{}, false
	}
	return u, true
}

// PermissionMatrix lists, per module, the actions each role holds.
func PermissionMatrix() []PermissionRow {
	rows := make([]PermissionRow, 0, len(rbac.Modules()))
	for _, module := range rbac.Modules() {
		row := PermissionRow{Module: module, Grants: map[rbac.Role]string{}}
		for _, role := range rbac.Roles() {
			var actions []string
			for _, a := range []rbac.Action{rbac.ActionRead, rbac.ActionCreate, rbac.ActionUpdate, rbac.ActionDelete} {
				if rbac.HasPermission(role, module, a) {
					actions = append(actions, string(a))
				}
			}
			row.Grants[role] = strings.Join(actions, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}
