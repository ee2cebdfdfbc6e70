package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
)

const SessionCookieName = "session_id"

type SessionFetcher interface {
	FindSessionByID(ctx context.Context, id string) (utils.SessionData, error)
}

// SessionMiddleware is the authorization gate: a request passes only when
// its session cookie resolves to a live session. The bound user id is put
// into the request context.
func SessionMiddleware(fetcher SessionFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			session, err := fetcher.FindSessionByID(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, apperr.ErrUnauthorized) {
					apperr.Write(w, r, err)
					return
				}
				log := logutil.GetOrDefault(r.Context())
				log.Debug().Err(err).Msg("session lookup failed")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if session.UserID == 0 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if session.Expired(time.Now()) {
				http.Error(w, "Session expired", http.StatusUnauthorized)
				return
			}

			ctx := utils.WithUserID(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORSMiddleware echoes the request origin back only when it is on the
// allow-list, so credentialed cookies work from the configured frontends.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
