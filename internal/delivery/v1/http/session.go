package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/shopline/storefront/internal/cfg"
)

type ctxKey int

const sessionIDKey ctxKey = iota

// SessionMiddleware выдаёт каждому посетителю cookie с идентификатором сессии
// и прокидывает его в контекст запроса. Само состояние сессии живёт в Redis.
type SessionMiddleware struct {
	cfg *cfg.SessionCfg
}

func NewSessionMiddleware(cfg *cfg.SessionCfg) *SessionMiddleware {
	return &SessionMiddleware{cfg: cfg}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(m.cfg.CookieName); err == nil && cookie.Value != "" {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(m.cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID возвращает идентификатор сессии текущего запроса.
func SessionID(r *http.Request) string {
	sessionID, _ := r.Context().Value(sessionIDKey).(string)
	return sessionID
}
