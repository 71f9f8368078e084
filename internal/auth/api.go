package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/users"
)

// APIHandler serves /api/v1/auth.
type APIHandler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewAPIHandler constructs an APIHandler.
func NewAPIHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers the token endpoints.
func (h *APIHandler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAuth)
		r.Get("/profile", h.profile)
		r.Post("/logout", h.logout)
		r.Post("/change-password", h.changePassword)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	Legacy       string `json:"refresh_token"`
}

func (r refreshRequest) token() string {
	if r.RefreshToken != "" {
		return r.RefreshToken
	}
	return r.Legacy
}

func (h *APIHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := shared.ValidateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	res, err := h.service.Login(r.Context(), req.Email, req.Password, meta(r))
	if err != nil {
		h.logger.Info("api login rejected", slog.String("email", req.Email), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Login successful", res)
}

func (h *APIHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.token() == "" {
		httpx.Fail(w, http.StatusBadRequest, "Refresh token is required", nil)
		return
	}
	res, err := h.service.Refresh(r.Context(), req.token(), meta(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Token refreshed successfully", res)
}

func (h *APIHandler) profile(w http.ResponseWriter, r *http.Request) {
	p, _ := rbac.PrincipalFromContext(r.Context())
	u, err := h.service.Profile(r.Context(), p.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Profile retrieved successfully", u)
}

func (h *APIHandler) logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength > 0 {
		_ = httpx.DecodeJSON(r, &req)
	}
	access := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if err := h.service.Logout(r.Context(), access, req.token()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *APIHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	p, _ := rbac.PrincipalFromContext(r.Context())
	var req users.PasswordChange
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.service.ChangePassword(r.Context(), p.UserID, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Password changed successfully", nil)
}

func meta(r *http.Request) ClientMeta {
	return ClientMeta{IP: r.RemoteAddr, UserAgent: r.UserAgent()}
}
