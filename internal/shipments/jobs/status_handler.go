package jobs

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freightdesk/freightdesk/internal/platform/httpx"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
	"github.com/freightdesk/freightdesk/internal/view"
)

// StatusHandler changes job status from the detail page and the API.
type StatusHandler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
	audit   shared.AuditRecorder
}

// NewStatusHandler builds a StatusHandler.
func NewStatusHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware, audit shared.AuditRecorder) *StatusHandler {
	return &StatusHandler{logger: logger, service: service, rbac: rbac, audit: audit}
}

// MountRoutes registers POST /{id}/status for the HTML screens.
func (h *StatusHandler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleJobs, rbac.ActionUpdate)).Post("/{id}/status", h.submit)
}

// MountAPIRoutes registers PATCH /{id}/status for the API.
func (h *StatusHandler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ModuleJobs, rbac.ActionUpdate)).Patch("/{id}/status", h.patch)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *StatusHandler) submit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	location := "/dashboard/jobs/" + strconv.FormatInt(id, 10)
	job, err := h.service.UpdateStatus(r.Context(), id, r.PostFormValue("status"))
	if err != nil {
		h.logger.Error("update job status failed", slog.Any("error", err), slog.Int64("id", id))
		msg := shared.UserSafeMessage(err)
		if fields := shared.FieldErrors(err); fields["status"] != "" {
			msg = fields["status"]
		}
		view.RedirectWithFlash(w, r, location, shared.FlashError, "Failed to update job status: "+msg)
		return
	}
	h.record(r, job)
	view.RedirectWithFlash(w, r, location, shared.FlashSuccess, "Job status updated to "+job.Status)
}

func (h *StatusHandler) patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid job ID", nil)
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	job, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, job)
	httpx.OK(w, http.StatusOK, "Job status updated successfully", job)
}

func (h *StatusHandler) record(r *http.Request, job Job) {
	if h.audit == nil {
		return
	}
	entry := shared.AuditLog{Action: "status:" + job.Status, Entity: "job", EntityID: strconv.FormatInt(job.ID, 10)}
	if p, ok := rbac.PrincipalFromContext(r.Context()); ok {
		entry.ActorID = p.UserID
		entry.Actor = p.Email
	}
	if err := h.audit.Record(r.Context(), entry); err != nil {
		h.logger.Warn("audit record failed", slog.Any("error", err))
	}
}
