package ui

import (
	"context"
	"net/http"

	"edahub/internal/session"
)

type contextKey string

const sessionKey contextKey = "edahub_session"

const sessionCookie = "edahub_session"

// withSession attaches the caller's session state to the request context,
// creating a fresh session (and cookie) for first-time callers.
func (a *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			id = cookie.Value
		}

		state := a.sessions.GetOrCreate(id)
		if state.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    state.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session.State {
	return r.Context().Value(sessionKey).(*session.State)
}
