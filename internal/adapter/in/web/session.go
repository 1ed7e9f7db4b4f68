package web

import (
	"context"
	"net/http"
	"time"

	"myblog/internal/model"
	"myblog/pkg/logger"
)

const sessionCookieName = "blog_session"

// Identity is the signed-in user attached to the request context by the
// session middleware. Handlers receive it explicitly; there is no
// ambient global user state.
type Identity struct {
	UserID int64
	Name   string
	Token  string
}

type identityCtxKey struct{}

func withIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// CurrentUser returns the signed-in identity, or nil for anonymous
// requests.
func CurrentUser(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityCtxKey{}).(*Identity)
	return id
}

// withSession resolves the session cookie into an Identity. A missing,
// expired or unknown token just leaves the request anonymous.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		session, err := h.sessions.Get(ctx, cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.users.GetUserByID(ctx, session.UserID)
		if err != nil {
			logger.FromContext(ctx).Warn("session user lookup failed",
				"user_id", session.UserID, "error", err)
			clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		id := &Identity{UserID: user.ID, Name: user.Name, Token: session.Token}
		next.ServeHTTP(w, r.WithContext(withIdentity(ctx, id)))
	})
}

// requireLogin gates a handler: anonymous requests are redirected to
// the signin page.
func (h *Handler) requireLogin(next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, "/signin", http.StatusFound)
			return
		}
		next(w, r)
	}
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID int64) (model.Session, error) {
	session, err := h.sessions.Start(r.Context(), userID)
	if err != nil {
		return model.Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// logRequests records method, path, and duration for every request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.FromContext(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
