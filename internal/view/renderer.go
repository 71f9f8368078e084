package view

import (
	"log/slog"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shared"
)

// Renderer assembles TemplateData from the request context and renders pages.
type Renderer struct {
	engine *Engine
	csrf   *shared.CSRFManager
	logger *slog.Logger
}

// NewRenderer builds a Renderer.
func NewRenderer(engine *Engine, csrf *shared.CSRFManager, logger *slog.Logger) *Renderer {
	return &Renderer{engine: engine, csrf: csrf, logger: logger}
}

// Data collects the per request values every layout needs.
func (v *Renderer) Data(r *http.Request, title string, data any) TemplateData {
	sess := shared.SessionFromContext(r.Context())
	var (
		csrfToken string
		flash     *shared.FlashMessage
	)
	if sess != nil {
		csrfToken = v.csrf.EnsureToken(sess)
		flash = sess.PopFlash()
	}
	gate := rbac.GateFromContext(r.Context())
	return TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		User:        gate.User(),
		Gate:        gate,
		Nav:         rbac.NavigationFor(gate, r.URL.Path),
		Data:        data,
	}
}

// Render writes the named page with the given status.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name, title string, data any, status int) {
	viewData := v.Data(r, title, data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.engine.Render(w, name, viewData); err != nil {
		v.logger.Error("render template", slog.Any("error", err), slog.String("template", name))
	}
}

// RedirectWithFlash queues a flash message and redirects.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
