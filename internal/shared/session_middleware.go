package shared

import (
	"context"
	"net/http"
)

// commitWriter persists the session right before the status line goes out,
// since cookies cannot be set after that.
type commitWriter struct {
	http.ResponseWriter
	ctx       context.Context
	sess      *Session
	manager   *SessionManager
	onError   func(error)
	committed bool
}

func (w *commitWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if err := w.manager.Commit(w.ctx, w.ResponseWriter, w.sess); err != nil && w.onError != nil {
		w.onError(err)
	}
}

func (w *commitWriter) WriteHeader(status int) {
	w.commit()
	w.ResponseWriter.WriteHeader(status)
}

func (w *commitWriter) Write(data []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(data)
}

func (w *commitWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Middleware loads the session into the request context and commits it when
// the handler starts its response. onError may be nil.
func (sm *SessionManager) Middleware(onError func(error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess, err := sm.Load(ctx, r)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			ctx = ContextWithSession(ctx, sess)
			cw := &commitWriter{ResponseWriter: w, ctx: ctx, sess: sess, manager: sm, onError: onError}
			next.ServeHTTP(cw, r.WithContext(ctx))
			cw.commit()
		})
	}
}

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the request session, nil outside the session middleware.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
