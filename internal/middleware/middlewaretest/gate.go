// Package middlewaretest provides a session gate backed by a fixed token for
// handler tests.
package middlewaretest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/middleware"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
)

const (
	Token         = "test-session-token"
	UserID   uint = 1
	Cookie        = middleware.SessionCookieName
)

type staticFetcher struct{}

func (staticFetcher) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	if id != Token {
		return utils.SessionData{}, errors.New("session not found")
	}
	return utils.SessionData{UserID: UserID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// Gate is the real session middleware wired to a fetcher that only knows
// Token.
func Gate() func(http.Handler) http.Handler {
	return middleware.SessionMiddleware(staticFetcher{})
}
